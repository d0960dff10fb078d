package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSize_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: `3`, want: 3},
		{in: `3.9`, want: 3},
		{in: `"4"`, want: 4},
		{in: `" 5.5 "`, want: 5},
		{in: `"many"`, wantErr: true},
		{in: `""`, wantErr: true},
		{in: `true`, wantErr: true},
		{in: `1e20`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var g GroupSize
			err := json.Unmarshal([]byte(tt.in), &g)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, GroupSize(tt.want), g)
		})
	}
}

func TestCreateVisitRequest(t *testing.T) {
	var req CreateVisitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"festivalId":"f1","visitDate":"2026-04-14","groupSize":"2"}`), &req))
	require.NoError(t, req.Validate())

	visit := req.ToDomain("u1")
	assert.Equal(t, "u1", visit.UserID)
	assert.Equal(t, "f1", visit.FestivalID)
	assert.Equal(t, 2, visit.GroupSize)
	assert.Equal(t, time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), visit.VisitDate)

	missing := CreateVisitRequest{FestivalID: "f1", VisitDate: "2026-04-14"}
	assert.Error(t, missing.Validate())

	badDate := CreateVisitRequest{FestivalID: "f1", VisitDate: "14/04/2026"}
	assert.Error(t, badDate.Validate())
}

func TestUpdateVisitRequest(t *testing.T) {
	var req UpdateVisitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"cancelled","groupSize":4}`), &req))
	require.NoError(t, req.Validate())

	patch := req.ToPatch()
	assert.Nil(t, patch.VisitDate)
	require.NotNil(t, patch.GroupSize)
	assert.Equal(t, 4, *patch.GroupSize)
	assert.Equal(t, "cancelled", *patch.Status)

	bad := "maybe"
	assert.Error(t, (&UpdateVisitRequest{Status: &bad}).Validate())
}
