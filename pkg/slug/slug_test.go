// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpotential/workspace/pkg/slug"
)

/*
TestFrom verifies the full slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Quarterly Report.pdf", "quarterly-report-pdf"},
		{"accents", "Résumé Überblick", "resume-uberblick"},
		{"special_chars", "a/b\\c:d*e?.png", "a-b-c-d-e-png"},
		{"multiple_spaces", "too   many   spaces", "too-many-spaces"},
		{"leading_trailing", "  --trimmed--  ", "trimmed"},
		{"digits_kept", "backup-2026-08-31.tar.gz", "backup-2026-08-31-tar-gz"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
