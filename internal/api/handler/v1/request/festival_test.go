package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFestivalsQuery(t *testing.T) {
	q := ListFestivalsQuery{
		Region:      "South",
		StartDate:   "2026-01-01",
		EndDate:     "2026-06-30T23:59:59Z",
		CrowdLevel:  "low",
		IsHiddenGem: "false",
	}
	require.NoError(t, q.Validate())

	filter := q.ToFilter()
	assert.Equal(t, "South", *filter.Region)
	assert.Nil(t, filter.Type)
	assert.Nil(t, filter.BudgetLevel)
	assert.Equal(t, "low", *filter.CrowdLevel)
	require.NotNil(t, filter.IsHiddenGem)
	assert.False(t, *filter.IsHiddenGem)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filter.StartsFrom)
	assert.Equal(t, time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC), *filter.EndsBy)

	empty := (&ListFestivalsQuery{}).ToFilter()
	assert.Nil(t, empty.StartsFrom)
	assert.Nil(t, empty.IsHiddenGem)
}

func TestListFestivalsQuery_SingleDateBoundIgnored(t *testing.T) {
	for name, q := range map[string]ListFestivalsQuery{
		"start only": {StartDate: "2026-06-01"},
		"end only":   {EndDate: "2026-06-30"},
	} {
		require.NoError(t, q.Validate(), name)

		filter := q.ToFilter()
		assert.Nil(t, filter.StartsFrom, name)
		assert.Nil(t, filter.EndsBy, name)
	}
}

func TestListFestivalsQuery_Invalid(t *testing.T) {
	for name, q := range map[string]ListFestivalsQuery{
		"type":        {Type: "carnival"},
		"crowdLevel":  {CrowdLevel: "packed"},
		"budgetLevel": {BudgetLevel: "free"},
		"isHiddenGem": {IsHiddenGem: "yes"},
		"startDate":   {StartDate: "tomorrow"},
	} {
		assert.Error(t, q.Validate(), name)
	}
}

func TestUpdateFestivalRequest_ToPatch(t *testing.T) {
	start := "2026-03-03"
	name := "Holi"
	req := UpdateFestivalRequest{Name: &name, StartDate: &start}
	require.NoError(t, req.Validate())

	patch := req.ToPatch()
	assert.Equal(t, "Holi", *patch.Name)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), *patch.StartDate)
	assert.Nil(t, patch.EndDate)
	assert.Nil(t, patch.TouristInfo)

	bad := "03/03/2026"
	assert.Error(t, (&UpdateFestivalRequest{EndDate: &bad}).Validate())
}
