// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	cliUtils "github.com/Fantom-foundation/tosca-tests/go/ct/driver/cli"
	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

var ListCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doList,
	Name:   "list",
	Usage:  "List all opcodes with their stack and immediate data properties",
	Flags: []cli.Flag{
		cliUtils.FilterFlag,
		cliUtils.RevisionFlag,
	},
})

func doList(context *cli.Context) error {
	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}
	revision, restricted, err := cliUtils.RevisionFlag.Fetch(context)
	if err != nil {
		return err
	}

	out := tabwriter.NewWriter(context.App.Writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(out, "OPCODE\tNAME\tPOPPED\tPUSHED\tMIN STACK\tDATA\tSINCE")
	for _, info := range vm.Catalog() {
		if !filter.MatchString(info.Name) {
			continue
		}
		if restricted && !vm.IsValidIn(info.OpCode, revision) {
			continue
		}
		fmt.Fprintf(out, "0x%02X\t%s\t%d\t%d\t%d\t%d\t%v\n",
			byte(info.OpCode), info.Name, info.Popped, info.Pushed,
			info.MinStackHeight, info.DataPortionLength, info.Since,
		)
	}
	return out.Flush()
}
