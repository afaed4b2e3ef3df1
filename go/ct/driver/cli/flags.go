// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"regexp"
	"runtime/pprof"

	"github.com/urfave/cli/v2"

	"github.com/Fantom-foundation/tosca-tests/go/ct/st"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
)

type filterFlagType struct {
	cli.StringFlag
}

var FilterFlag = &filterFlagType{
	cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "list only opcodes which name matches the given regex",
		Value:   "",
	},
}

func (f *filterFlagType) Fetch(context *cli.Context) (*regexp.Regexp, error) {
	return regexp.Compile(context.String(f.Name))
}

type seedFlagType struct {
	cli.Uint64Flag
}

var SeedFlag = &seedFlagType{
	cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "seed for the random number generator",
	},
}

func (f *seedFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type sizeFlagType struct {
	cli.IntFlag
}

var SizeFlag = &sizeFlagType{
	cli.IntFlag{
		Name:  "size",
		Usage: "size of the generated code in bytes, random if negative",
		Value: -1,
	},
}

// Fetch returns the requested size and whether a size was requested at all.
func (f *sizeFlagType) Fetch(context *cli.Context) (int, bool) {
	size := context.Int(f.Name)
	return size, size >= 0
}

type revisionFlagType struct {
	cli.StringFlag
}

var RevisionFlag = &revisionFlagType{
	cli.StringFlag{
		Name:    "revision",
		Aliases: []string{"r"},
		Usage:   "restrict to opcodes valid in the given revision (e.g. Cancun)",
	},
}

// Fetch returns the selected revision, or false if none was selected.
func (f *revisionFlagType) Fetch(context *cli.Context) (tosca.Revision, bool, error) {
	name := context.String(f.Name)
	if name == "" {
		return 0, false, nil
	}
	revision, err := tosca.ParseRevision(name)
	if err != nil {
		return 0, false, err
	}
	return revision, true, nil
}

type fileFlagType struct {
	cli.StringFlag
}

var FileFlag = &fileFlagType{
	cli.StringFlag{
		Name:      "file",
		Usage:     "read the input from the provided filename",
		TakesFile: true,
	},
}

func (f *fileFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type initcodeFlagType struct {
	cli.BoolFlag
}

var InitcodeFlag = &initcodeFlagType{
	cli.BoolFlag{
		Name:  "initcode",
		Usage: "wrap the code into init code deploying it",
	},
}

func (f *initcodeFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type cacheSizeFlagType struct {
	cli.IntFlag
}

var CacheSizeFlag = &cacheSizeFlagType{
	cli.IntFlag{
		Name:  "cache-size",
		Usage: "size of the code analysis cache in bytes, 0 for the default, negative to disable",
		Value: 0,
	},
}

func (f *cacheSizeFlagType) Fetch(context *cli.Context) st.CacheConfig {
	return st.CacheConfig{Size: context.Int(f.Name)}
}

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level (0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace)",
		Value: 2,
	},
}

func (f *verbosityFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type cpuProfileType struct {
	cli.StringFlag
}

var CpuProfileFlag = &cpuProfileType{
	cli.StringFlag{
		Name:      "cpuprofile",
		Usage:     "store CPU profile in the provided filename",
		TakesFile: true,
	},
}

func (f *cpuProfileType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

// AddCommonFlags adds flags shared by all commands to the given command.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, CpuProfileFlag)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {

		if cpuprofileFilename := CpuProfileFlag.Fetch(ctx); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}
