// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

import (
	"encoding/json"
	"fmt"
)

// Revision is an enumeration for EVM specification revisions (aka. Hard-Forks).
// Revisions are numbered consecutively in chronological order. The name
// prefix follows the main-net fork count, which includes Muir Glacier (08),
// a fork without EVM changes and thus without a constant here. The prefix is
// therefore not the numeric value for revisions since Berlin.
type Revision int

const (
	R00_Frontier Revision = iota
	R01_Homestead
	R02_TangerineWhistle
	R03_SpuriousDragon
	R04_Byzantium
	R05_Constantinople
	R06_Petersburg
	R07_Istanbul
	R09_Berlin
	R10_London
	R11_Paris
	R12_Shanghai
	R13_Cancun
	R14_Prague
	R15_Osaka
	numRevisions int = iota

	// R99_UnknownNextRevision collects features which are not yet scheduled
	// for any fork, e.g. the EVM Object Format instructions.
	R99_UnknownNextRevision Revision = 99
)

var revisionNames = map[Revision]string{
	R00_Frontier:            "Frontier",
	R01_Homestead:           "Homestead",
	R02_TangerineWhistle:    "TangerineWhistle",
	R03_SpuriousDragon:      "SpuriousDragon",
	R04_Byzantium:           "Byzantium",
	R05_Constantinople:      "Constantinople",
	R06_Petersburg:          "Petersburg",
	R07_Istanbul:            "Istanbul",
	R09_Berlin:              "Berlin",
	R10_London:              "London",
	R11_Paris:               "Paris",
	R12_Shanghai:            "Shanghai",
	R13_Cancun:              "Cancun",
	R14_Prague:              "Prague",
	R15_Osaka:               "Osaka",
	R99_UnknownNextRevision: "UnknownNextRevision",
}

// GetAllKnownRevisions returns all revisions in chronological order, ending
// with R99_UnknownNextRevision.
func GetAllKnownRevisions() []Revision {
	res := make([]Revision, 0, numRevisions+1)
	for r := R00_Frontier; int(r) < numRevisions; r++ {
		res = append(res, r)
	}
	return append(res, R99_UnknownNextRevision)
}

// GetLatestRevision returns the most recent scheduled revision.
func GetLatestRevision() Revision {
	return Revision(numRevisions - 1)
}

func (r Revision) String() string {
	if name, found := revisionNames[r]; found {
		return name
	}
	return fmt.Sprintf("Revision(%d)", r)
}

// ParseRevision resolves a revision by its name.
func ParseRevision(name string) (Revision, error) {
	for rev, revName := range revisionNames {
		if revName == name {
			return rev, nil
		}
	}
	return 0, fmt.Errorf("unknown revision: %q", name)
}

func (r Revision) MarshalJSON() ([]byte, error) {
	if _, found := revisionNames[r]; !found {
		return nil, &json.UnsupportedValueError{Str: r.String()}
	}
	return json.Marshal(r.String())
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	revision, err := ParseRevision(s)
	if err != nil {
		return err
	}
	*r = revision
	return nil
}
