package schema

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joho9119/other-support-xml-gen/pkg/xmlgen"
)

func TestNewName(t *testing.T) {
	name, err := NewName("Jane", "A.", "Doe")
	require.NoError(t, err)
	assert.Equal(t, Name{FirstName: "Jane", MiddleName: "A.", LastName: "Doe"}, name)

	_, err = NewName("", "", "Doe")
	var identityErr *IdentityError
	require.ErrorAs(t, err, &identityErr)
	assert.Equal(t, "firstname", identityErr.Part)
	assert.Equal(t, "no firstname found for the individual", err.Error())

	_, err = NewName("Jane", "", "")
	require.ErrorAs(t, err, &identityErr)
	assert.Equal(t, "lastname", identityErr.Part)
}

func TestNewPosition(t *testing.T) {
	org := Organization{OrgName: "Example University"}

	position, err := NewPosition("Professor", org, Year{2015}, nil)
	require.NoError(t, err)
	assert.Nil(t, position.EndDate)

	end := Year{2020}
	position, err = NewPosition("Postdoc", org, Year{2015}, &end)
	require.NoError(t, err)
	assert.Equal(t, 2020, position.EndDate.Year)

	_, err = NewPosition("Postdoc", org, Year{2021}, &end)
	var posErr *PositionError
	require.ErrorAs(t, err, &posErr)
	assert.Equal(t, "Postdoc", posErr.Title)
	assert.Equal(t, 2021, posErr.StartYear)
	assert.Equal(t, 2020, posErr.EndYear)
}

func TestNewSupportTruncatesLongFields(t *testing.T) {
	s := NewSupport(Support{
		ProjectTitle:     strings.Repeat("t", 1000),
		AwardNumber:      strings.Repeat("n", 80),
		SupportSource:    strings.Repeat("s", 100),
		Location:         strings.Repeat("l", 100),
		PotentialOverlap: strings.Repeat("o", 6000),
	})

	assert.Len(t, s.ProjectTitle, MaxProjectTitle)
	assert.Len(t, s.AwardNumber, MaxAwardNumber)
	assert.Len(t, s.SupportSource, MaxSupportSource)
	assert.Len(t, s.Location, MaxLocation)
	assert.Len(t, s.PotentialOverlap, MaxPotentialOverlap)
}

func TestNewSupportTruncatesOnRuneBoundary(t *testing.T) {
	// A multibyte character straddling the cap must be dropped whole, not
	// split into a bare lead byte.
	s := NewSupport(Support{
		ProjectTitle: strings.Repeat("t", MaxProjectTitle-1) + "ééé",
	})

	assert.True(t, utf8.ValidString(s.ProjectTitle))
	assert.Equal(t, MaxProjectTitle, utf8.RuneCountInString(s.ProjectTitle))
	assert.True(t, strings.HasSuffix(s.ProjectTitle, "é"))

	// Multibyte text under the cap passes through untouched.
	s = NewSupport(Support{ProjectTitle: "Étude générale"})
	assert.Equal(t, "Étude générale", s.ProjectTitle)
}

func TestNewSupportAwardNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"spaces_removed", "5 R01 GM123456", "5R01GM123456"},
		{"blank_becomes_na", "", "N/A"},
		{"spaces_only_becomes_na", "   ", "N/A"},
		{"unchanged", "5R01GM123456-03", "5R01GM123456-03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSupport(Support{AwardNumber: tc.in})
			assert.Equal(t, tc.want, s.AwardNumber)
		})
	}
}

func TestNewSupportAwardAmountDigitsOnly(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"currency_stripped", "$3,000,000", "3000000"},
		{"text_stripped", "approx. 50000 USD", "50000"},
		{"empty_stays_empty", "", ""},
		{"capped_at_thirteen_digits", strings.Repeat("9", 20), strings.Repeat("9", 13)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSupport(Support{AwardAmount: tc.in})
			assert.Equal(t, tc.want, s.AwardAmount)
		})
	}
}

func TestNewSupportEnumFallbacks(t *testing.T) {
	s := NewSupport(Support{})
	assert.Equal(t, ContributionAward, s.ContributionType)
	assert.Equal(t, SupportCurrent, s.SupportType)

	s = NewSupport(Support{ContributionType: "grant", SupportType: "maybe"})
	assert.Equal(t, ContributionAward, s.ContributionType)
	assert.Equal(t, SupportCurrent, s.SupportType)

	s = NewSupport(Support{ContributionType: ContributionInKind, SupportType: SupportPending})
	assert.Equal(t, ContributionInKind, s.ContributionType)
	assert.Equal(t, SupportPending, s.SupportType)
}

func TestNewSupportInKindDescription(t *testing.T) {
	// In-kind entries without a description inherit the project title.
	s := NewSupport(Support{
		ProjectTitle:     "Shared sequencing core access",
		ContributionType: ContributionInKind,
	})
	assert.Equal(t, "Shared sequencing core access", s.InKindDescription)

	// An explicit description survives, capped.
	s = NewSupport(Support{
		ProjectTitle:      "Title",
		InKindDescription: strings.Repeat("d", 1000),
		ContributionType:  ContributionInKind,
	})
	assert.Len(t, s.InKindDescription, MaxInKindDescription)

	// Monetary awards never carry an in-kind description.
	s = NewSupport(Support{
		ProjectTitle:      "Title",
		InKindDescription: "leftover",
		ContributionType:  ContributionAward,
	})
	assert.Equal(t, "", s.InKindDescription)
}

func TestPersonMonthRenderXML(t *testing.T) {
	// Amounts keep the scale they were parsed with: "2.0" must not collapse
	// to "2" on the way out.
	cases := []struct {
		in   string
		want string
	}{
		{"2.0", `<personmonth year="2024">2.0</personmonth>`},
		{"3", `<personmonth year="2024">3</personmonth>`},
		{"2.50", `<personmonth year="2024">2.50</personmonth>`},
		{"1.5", `<personmonth year="2024">1.5</personmonth>`},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)

		pm := PersonMonth{Year: "2024", Amount: amount}
		assert.Equal(t, tc.want, pm.RenderXML())
	}
}

func TestSupportRendersEmptyFieldsSelfClosing(t *testing.T) {
	s := NewSupport(Support{ProjectTitle: "Study", AwardNumber: "R01"})

	xml, err := xmlgen.GenerateString(s, "")
	require.NoError(t, err)
	assert.Contains(t, xml, "<projecttitle>Study</projecttitle>")
	assert.Contains(t, xml, "<inkinddescription/>")
	assert.Contains(t, xml, "<startdate/>")
	assert.Contains(t, xml, "<commitment></commitment>")
}

func TestProfileXML(t *testing.T) {
	amount, err := decimal.NewFromString("3.0")
	require.NoError(t, err)

	profile := &Profile{
		Identification: Identification{
			Name: Name{FirstName: "Jane", LastName: "Doe"},
		},
		Funding: []Support{
			NewSupport(Support{
				ProjectTitle: "Study",
				Commitment:   []PersonMonth{{Year: "2024", Amount: amount}},
			}),
		},
	}

	xml, err := xmlgen.GenerateString(profile, "profile")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(xml, "<profile><identification><name>"))
	assert.Contains(t, xml, "<firstname>Jane</firstname>")
	// Middle name is skipped, the employment wrapper is kept even when empty.
	assert.NotContains(t, xml, "middlename")
	assert.Contains(t, xml, "<employment></employment>")
	assert.Contains(t, xml, "<funding><support>")
	assert.Contains(t, xml, `<commitment><personmonth year="2024">3.0</personmonth></commitment>`)
	assert.True(t, strings.HasSuffix(xml, "</profile>"))
}

func TestXMLFileName(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 9, 123, time.UTC)

	cases := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name: "full_name",
			profile: Profile{Identification: Identification{
				Name: Name{FirstName: "Jane", LastName: "Doe"},
			}},
			want: "Doe_Jane_2024-03-05_14-30-09-123.xml",
		},
		{
			name: "first_name_only",
			profile: Profile{Identification: Identification{
				Name: Name{FirstName: "Jane"},
			}},
			want: "Jane_2024-03-05_14-30-09-123.xml",
		},
		{
			name:    "no_name",
			profile: Profile{},
			want:    "no_name_found_2024-03-05_14-30-09-123.xml",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.profile.xmlFileNameAt(now))
		})
	}
}
