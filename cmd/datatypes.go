package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thirdweb-dev/freeze/internal/collect"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var datatypesCmd = &cobra.Command{
	Use:   "datatypes",
	Short: "List collectable datatypes with their modes and columns",
	Run: func(cmd *cobra.Command, args []string) {
		RunDatatypes(cmd, args)
	},
}

func RunDatatypes(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATATYPE\tMODE\tDIMENSIONS\tDEFAULT COLUMNS")
	for _, d := range schema.AllDatatypes() {
		collector, ok := collect.Get(d)
		if !ok {
			continue
		}
		def, _ := schema.DefinitionOf(d)
		for _, mode := range []collect.Mode{collect.ByBlock, collect.ByTransaction} {
			required, optional, ok := collector.Dims(mode)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d, mode, describeDims(required, optional), strings.Join(def.DefaultColumnNames(), ","))
		}
	}
	w.Flush()
}

func describeDims(required, optional []collect.ChunkDim) string {
	parts := make([]string, 0, len(required)+len(optional))
	for _, dim := range required {
		parts = append(parts, dim.String())
	}
	for _, dim := range optional {
		parts = append(parts, "["+dim.String()+"]")
	}
	return strings.Join(parts, ",")
}
