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
	"bytes"
	"slices"
	"testing"
)

func TestRevisions_Marshal(t *testing.T) {
	tests := map[Revision]string{
		R00_Frontier:            "\"Frontier\"",
		R04_Byzantium:           "\"Byzantium\"",
		R07_Istanbul:            "\"Istanbul\"",
		R09_Berlin:              "\"Berlin\"",
		R10_London:              "\"London\"",
		R11_Paris:               "\"Paris\"",
		R12_Shanghai:            "\"Shanghai\"",
		R13_Cancun:              "\"Cancun\"",
		R14_Prague:              "\"Prague\"",
		R15_Osaka:               "\"Osaka\"",
		R99_UnknownNextRevision: "\"UnknownNextRevision\"",
	}

	for input, expected := range tests {
		marshaled, err := input.MarshalJSON()
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if !bytes.Equal(marshaled, []byte(expected)) {
			t.Errorf("Unexpected marshaled revision, wanted: %v vs got: %v", expected, marshaled)
		}
	}
}

func TestRevisions_MarshalError(t *testing.T) {
	revisions := []Revision{Revision(42), Revision(100), Revision(-1)}
	for _, rev := range revisions {
		marshaled, err := rev.MarshalJSON()
		if err == nil {
			t.Errorf("Expected error but got: %v", marshaled)
		}
	}
}

func TestRevisions_Unmarshal(t *testing.T) {
	for _, want := range GetAllKnownRevisions() {
		encoded, err := want.MarshalJSON()
		if err != nil {
			t.Fatalf("failed to marshal %v: %v", want, err)
		}
		var got Revision
		if err := got.UnmarshalJSON(encoded); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if want != got {
			t.Errorf("Unexpected unmarshaled revision, wanted: %v vs got: %v", want, got)
		}
	}
}

func TestRevisions_UnmarshalError(t *testing.T) {
	inputs := []string{"Error", "Revision(42)", "Istanbul", "\"Merge\"", "\"istanbul\""}
	for _, input := range inputs {
		var rev Revision
		err := rev.UnmarshalJSON([]byte(input))
		if err == nil {
			t.Errorf("Expected error but got: %v", rev)
		}
	}
}

func TestRevisions_AllKnownRevisionsAreOrdered(t *testing.T) {
	revisions := GetAllKnownRevisions()
	if want, got := numRevisions+1, len(revisions); want != got {
		t.Fatalf("unexpected number of revisions, want %d, got %d", want, got)
	}
	if !slices.IsSorted(revisions) {
		t.Errorf("revisions are not in chronological order: %v", revisions)
	}
	if want, got := R99_UnknownNextRevision, revisions[len(revisions)-1]; want != got {
		t.Errorf("unexpected last revision, want %v, got %v", want, got)
	}
	if want, got := R15_Osaka, GetLatestRevision(); want != got {
		t.Errorf("unexpected latest revision, want %v, got %v", want, got)
	}
}

func TestRevisions_AreNumberedConsecutively(t *testing.T) {
	revisions := GetAllKnownRevisions()
	for i, rev := range revisions[:len(revisions)-1] {
		if want, got := Revision(i), rev; want != got {
			t.Errorf("unexpected value of %v, want %d, got %d", rev, want, got)
		}
	}
	if want, got := Revision(8), R09_Berlin; want != got {
		t.Errorf("unexpected value of Berlin, want %d, got %d", want, got)
	}
	if want, got := Revision(14), R15_Osaka; want != got {
		t.Errorf("unexpected value of Osaka, want %d, got %d", want, got)
	}
}

func TestRevisions_ParseRevision(t *testing.T) {
	for _, rev := range GetAllKnownRevisions() {
		got, err := ParseRevision(rev.String())
		if err != nil {
			t.Fatalf("failed to parse %v: %v", rev, err)
		}
		if rev != got {
			t.Errorf("unexpected revision, want %v, got %v", rev, got)
		}
	}
	if _, err := ParseRevision("Revision(8)"); err == nil {
		t.Errorf("expected parsing of unknown revision to fail")
	}
}
