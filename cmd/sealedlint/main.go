package main

import (
	"github.com/Vuzi/sealedgen/internal/sealedlint"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(sealedlint.Analyzer)
}
