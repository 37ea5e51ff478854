package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeStringRe(t *testing.T) {
	valid := []string{
		"dep-2024-001",
		"release:b5f9c1a2",
		"invoice_42.v2",
	}
	for _, s := range valid {
		assert.True(t, safeStringRe.MatchString(s), s)
	}

	invalid := []string{
		"has space",
		"semi;colon",
		"quote'",
		"<script>",
		"",
	}
	for _, s := range invalid {
		assert.False(t, safeStringRe.MatchString(s), s)
	}
}

func TestSanitizeStruct(t *testing.T) {
	ref := "  <b>deliverable</b>  "
	req := &SubmitMilestoneRequest{
		SubmitterID:   " 9f8d0a44-1111-2222-3333-444455556666 ",
		SubmissionRef: ref,
	}
	SanitizeStruct(req)

	assert.Equal(t, "9f8d0a44-1111-2222-3333-444455556666", req.SubmitterID)
	assert.Equal(t, "&lt;b&gt;deliverable&lt;/b&gt;", req.SubmissionRef)
}

func TestSanitizeStructPointerField(t *testing.T) {
	due := "  2026-09-01T00:00:00Z "
	req := &CreateMilestoneRequest{Amount: 1000, DueDate: &due}
	SanitizeStruct(req)
	assert.Equal(t, "2026-09-01T00:00:00Z", *req.DueDate)
}

func TestSanitizeStructNonPointerIsNoop(t *testing.T) {
	req := DepositRequest{Currency: " usd "}
	SanitizeStruct(req)
	assert.Equal(t, " usd ", req.Currency)
}
