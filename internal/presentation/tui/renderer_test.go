package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

func TestInquiryDetail(t *testing.T) {
	reply := "We are open 9 to 5."
	inq := &domain.Inquiry{
		Title:     "Hours",
		Content:   "When are you open?",
		Author:    "kim",
		CreatedAt: time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC),
		Status:    domain.StatusAnswered,
		Reply:     &reply,
	}

	md := InquiryDetail(inq)
	assert.Contains(t, md, "# Hours")
	assert.Contains(t, md, "by kim")
	assert.Contains(t, md, "## Reply")
	assert.Contains(t, md, reply)

	inq.Reply = nil
	inq.Status = domain.StatusPending
	md = InquiryDetail(inq)
	assert.Contains(t, md, "No reply yet")
	assert.NotContains(t, md, "## Reply")
}

func TestListLineMarksSecrets(t *testing.T) {
	line := ListLine(3, domain.Inquiry{
		Title: "Private", Author: "lee", IsSecret: true,
		Status: domain.StatusPending, CreatedAt: time.Now(),
	})
	assert.Contains(t, line, "🔒")
	assert.Contains(t, line, "Private")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "very long…", truncate("very long title here", 10))
}
