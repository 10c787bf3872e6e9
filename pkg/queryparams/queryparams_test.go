package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medibook/medibook-api/models"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(ListParams{})
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Empty(t, p.Status)
	assert.False(t, p.HasStatus())
}

func TestNormalizeAllMeansNoFilter(t *testing.T) {
	for _, status := range []string{"all", "ALL", " All ", ""} {
		p := Normalize(ListParams{Status: status})
		assert.Empty(t, p.Status, "status %q must collapse to no filter", status)
	}
}

func TestNormalizeUpcomingTab(t *testing.T) {
	p := Normalize(ListParams{Status: "upcoming"})
	assert.Equal(t, string(models.StatusConfirmed), p.Status)

	p = Normalize(ListParams{Status: "Pending"})
	assert.Equal(t, "pending", p.Status)
}

func TestNormalizeLimitBounds(t *testing.T) {
	p := Normalize(ListParams{Page: -2, Limit: 100000})
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	p := Normalize(ListParams{Page: 3, Limit: 10})
	assert.Equal(t, 20, p.Offset())
}

func TestMatchesAnyIsCaseInsensitiveOr(t *testing.T) {
	assert.True(t, MatchesAny("tim", "BS. Trần Văn An", "Tim mạch", "Phòng khám Sài Gòn"))
	assert.True(t, MatchesAny("TRẦN", "BS. Trần Văn An", "", ""))
	assert.False(t, MatchesAny("nhi", "BS. Trần Văn An", "Tim mạch", "Phòng khám Sài Gòn"))
	assert.True(t, MatchesAny("", "anything"))
	assert.True(t, MatchesAny("   ", "anything"))
}

func TestMatchDoctor(t *testing.T) {
	d := models.Doctor{
		FullName:  "BS. Trần Văn An",
		Specialty: models.Specialty{Name: "Tim mạch"},
		Clinic:    models.Clinic{Name: "Phòng khám Đa khoa Sài Gòn"},
	}
	assert.True(t, MatchDoctor("sài gòn", d))
	assert.True(t, MatchDoctor("văn an", d))
	assert.True(t, MatchDoctor("mạch", d))
	assert.False(t, MatchDoctor("da liễu", d))
}
