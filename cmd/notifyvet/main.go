// Command notifyvet reports notifygen diagnostics as a vet-style checker.
//
//	go vet -vettool=$(which notifyvet) ./...
//	notifyvet -fix ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/teranos/notifygen/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
