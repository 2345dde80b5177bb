// Package sealed is the runtime support library for sealedgen generated
// codecs. Generated files import this package alone: it carries the tagged
// object envelope helpers, the decode and encode error taxonomy, and the
// generic Codec pairing.
package sealed
