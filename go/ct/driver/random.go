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

	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"pgregory.net/rand"

	cliUtils "github.com/Fantom-foundation/tosca-tests/go/ct/driver/cli"
	"github.com/Fantom-foundation/tosca-tests/go/ct/gen"
)

var RandomCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doRandom,
	Name:   "random",
	Usage:  "Generate random byte code",
	Flags: []cli.Flag{
		cliUtils.SeedFlag,
		cliUtils.SizeFlag,
		cliUtils.RevisionFlag,
	},
})

func doRandom(context *cli.Context) error {
	seed := cliUtils.SeedFlag.Fetch(context)
	generator := gen.NewCodeGenerator()
	if size, fixed := cliUtils.SizeFlag.Fetch(context); fixed {
		generator.SetSize(size)
	}
	revision, restricted, err := cliUtils.RevisionFlag.Fetch(context)
	if err != nil {
		return err
	}
	if restricted {
		generator.SetRevision(revision)
	}

	code, err := generator.Generate(rand.New(seed))
	if err != nil {
		return err
	}
	log.Info("Generated random code", "seed", seed, "size", unitconv.FormatPrefix(float64(code.Len()), unitconv.SI, 0)+"B", "constraints", generator)
	fmt.Fprintln(context.App.Writer, code.Hex())
	return nil
}
