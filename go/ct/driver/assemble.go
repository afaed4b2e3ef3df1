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
	"os"
	"strings"

	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/Fantom-foundation/tosca-tests/go/ct/asm"
	cliUtils "github.com/Fantom-foundation/tosca-tests/go/ct/driver/cli"
	"github.com/Fantom-foundation/tosca-tests/go/ct/st"
)

var AssembleCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doAssemble,
	Name:      "assemble",
	Usage:     "Assemble textual source code into hex encoded byte code",
	ArgsUsage: "<source>",
	Flags: []cli.Flag{
		cliUtils.FileFlag,
		cliUtils.InitcodeFlag,
	},
})

var DisasmCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doDisasm,
	Name:      "disasm",
	Usage:     "Disassemble hex encoded byte code",
	ArgsUsage: "<hex code>...",
	Flags: []cli.Flag{
		cliUtils.FileFlag,
		cliUtils.CacheSizeFlag,
	},
})

// readInput obtains the command input from the file flag or, if not set,
// from the command line arguments.
func readInput(context *cli.Context) (string, error) {
	if filename := cliUtils.FileFlag.Fetch(context); filename != "" {
		if context.Args().Present() {
			return "", fmt.Errorf("input must be provided either as file or as arguments")
		}
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	if !context.Args().Present() {
		return "", fmt.Errorf("missing input")
	}
	return strings.Join(context.Args().Slice(), " "), nil
}

func doAssemble(context *cli.Context) error {
	src, err := readInput(context)
	if err != nil {
		return err
	}
	code, err := asm.Parse(src)
	if err != nil {
		return err
	}
	log.Debug("Assembled code", "size", code.Len(), "maxStack", code.MaxStackHeight())

	if cliUtils.InitcodeFlag.Fetch(context) {
		code = asm.Initcode(code, asm.Bytecode{})
		log.Debug("Wrapped into init code", "size", code.Len())
	}
	log.Info("Assembly completed", "size", unitconv.FormatPrefix(float64(code.Len()), unitconv.SI, 0)+"B", "hash", code.Hash())
	fmt.Fprintln(context.App.Writer, code.Hex())
	return nil
}

// doDisasm prints a listing of each whitespace separated hex code of the
// input. Instructions are annotated with the legacy code analysis, which
// identical codes share through a code cache.
func doDisasm(context *cli.Context) error {
	src, err := readInput(context)
	if err != nil {
		return err
	}
	cache, err := st.NewCodeCache(cliUtils.CacheSizeFlag.Fetch(context))
	if err != nil {
		return err
	}
	inputs := strings.Fields(src)
	for i, input := range inputs {
		raw, err := hexutil.Decode(input)
		if err != nil {
			return fmt.Errorf("invalid hex code %d: %w", i, err)
		}
		code := asm.Raw(raw)
		hash := code.Hash()
		analysis := cache.Get(raw, &hash)
		log.Debug("Analyzed code", "size", code.Len(), "hash", hash, "jumpdests", len(analysis.JumpDests()), "cached", cache.Len())

		if len(inputs) > 1 {
			fmt.Fprintf(context.App.Writer, "# %v\n", hash)
		}
		fmt.Fprint(context.App.Writer, listing(code, analysis))
	}
	return nil
}

// listing is like asm.Bytecode.Listing but marks valid jump destinations
// and instructions which legacy analysis places into PUSH data.
func listing(code asm.Bytecode, analysis *st.Code) string {
	var builder strings.Builder
	for _, instruction := range code.Instructions() {
		fmt.Fprintf(&builder, "%04x: %v", instruction.Pos, instruction)
		switch {
		case analysis.IsJumpDest(instruction.Pos):
			builder.WriteString(" ; jumpdest")
		case analysis.IsData(instruction.Pos):
			builder.WriteString(" ; push data")
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
