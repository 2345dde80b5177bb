package generator

import (
	"strings"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    Request
		wantErr string
	}{
		{
			name: "defaults",
			args: "",
			want: Request{Tag: "__type", Ops: OpsCodec},
		},
		{
			name: "custom tag",
			args: "tag=kind",
			want: Request{Tag: "kind", Ops: OpsCodec},
		},
		{
			name: "decode only",
			args: "ops=decode",
			want: Request{Tag: "__type", Ops: OpsDecode},
		},
		{
			name: "tag and ops",
			args: "tag=kind ops=encode",
			want: Request{Tag: "kind", Ops: OpsEncode},
		},
		{
			name:    "unknown key",
			args:    "flavor=mint",
			wantErr: "unknown directive key",
		},
		{
			name:    "unknown ops",
			args:    "ops=transcode",
			wantErr: "unknown ops value",
		},
		{
			name:    "missing value",
			args:    "tag=",
			wantErr: "malformed directive argument",
		},
		{
			name:    "bare word",
			args:    "kind",
			wantErr: "malformed directive argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDirective(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseDirective(%q) error = %v, want %q", tt.args, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDirective(%q) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("parseDirective(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestFindDirectives(t *testing.T) {
	src := typeCheck(t, `
package fixture

//sealedgen:family tag=kind
type Event interface {
	isEvent()
}

// Shape has a doc comment above the directive.
//
//sealedgen:family
type Shape interface {
	isShape()
}

// Plain carries no directive.
type Plain interface {
	isPlain()
}
`)

	reqs, err := FindDirectives([]Source{src})
	if err != nil {
		t.Fatalf("FindDirectives() error = %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	if reqs[0].Type != "Event" || reqs[0].Tag != "kind" || reqs[0].Ops != OpsCodec {
		t.Errorf("request 0 = %+v, want Event with tag kind", reqs[0])
	}
	if reqs[1].Type != "Shape" || reqs[1].Tag != "__type" {
		t.Errorf("request 1 = %+v, want Shape with default tag", reqs[1])
	}
}

func TestFindDirectivesGroupedDecl(t *testing.T) {
	src := typeCheck(t, `
package fixture

//sealedgen:family ops=decode
type (
	Event interface {
		isEvent()
	}
)
`)

	reqs, err := FindDirectives([]Source{src})
	if err != nil {
		t.Fatalf("FindDirectives() error = %v", err)
	}
	if len(reqs) != 1 || reqs[0].Type != "Event" || reqs[0].Ops != OpsDecode {
		t.Errorf("requests = %+v, want Event with ops decode", reqs)
	}
}

func TestFindDirectivesMalformed(t *testing.T) {
	src := typeCheck(t, `
package fixture

//sealedgen:family tag
type Event interface {
	isEvent()
}
`)

	_, err := FindDirectives([]Source{src})
	if err == nil || !strings.Contains(err.Error(), "Event") {
		t.Fatalf("FindDirectives() error = %v, want malformed directive naming Event", err)
	}
}

func TestFindDirectivesIgnoresLongerMarkers(t *testing.T) {
	src := typeCheck(t, `
package fixture

//sealedgen:familytree
type Event interface {
	isEvent()
}
`)

	reqs, err := FindDirectives([]Source{src})
	if err != nil {
		t.Fatalf("FindDirectives() error = %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("requests = %+v, want none for a different marker", reqs)
	}
}
