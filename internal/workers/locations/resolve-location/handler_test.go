// internal/workers/locations/resolve-location/handler_test.go
package resolvelocation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/location"
	"booking-workers/internal/models"
)

type fakeResolver struct {
	locations map[string]*models.Location
	refs      []location.Reference
}

func (f *fakeResolver) Resolve(_ context.Context, ref location.Reference) (*models.Location, error) {
	f.refs = append(f.refs, ref)
	if loc, ok := f.locations[ref.Term()]; ok {
		return loc, nil
	}
	return nil, errors.NewLocationNotFoundError(ref.Term())
}

func newTestHandler(t *testing.T, resolver LocationResolver) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, resolver, logger.NewTestLogger(t))
}

func decodeInput(t *testing.T, raw string) *Input {
	t.Helper()
	var input Input
	require.NoError(t, json.Unmarshal([]byte(raw), &input))
	return &input
}

func TestHandler_Execute(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*models.Location{
		"123456":    {ID: 123456, Name: "Quiet Room", Kind: models.KindRoom},
		"701":       {ID: 9701, Name: "Room 701", Kind: models.KindRoom},
		"Desk 12":   {ID: 8012, Name: "Desk 12", Kind: models.KindDesk},
		"Boardroom": {ID: 8100, Name: "Boardroom", Kind: models.KindRoom},
	}}
	handler := newTestHandler(t, resolver)

	tests := []struct {
		name     string
		input    string
		wantID   int64
		wantKind string
	}{
		{"direct id", `{"location": 123456}`, 123456, "location_id"},
		{"numeric room number", `{"location": 701}`, 9701, "room_number"},
		{"string room number", `{"location": "701"}`, 9701, "room_number"},
		{"desk id", `{"location": "Desk 12"}`, 8012, "desk_id"},
		{"free text", `{"location": "Boardroom"}`, 8100, "free_text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), decodeInput(t, tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.wantID, output.LocationID)
			assert.Equal(t, tt.wantID, output.Location.ID)
			assert.Equal(t, tt.wantKind, output.ReferenceKind)
		})
	}
}

func TestHandler_Execute_StringIDIsNotDirect(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*models.Location{
		"123456": {ID: 123456, Name: "Quiet Room", Kind: models.KindRoom},
	}}

	output, err := newTestHandler(t, resolver).Execute(context.Background(), decodeInput(t, `{"location": "123456"}`))
	require.NoError(t, err)

	_, isID := resolver.refs[0].ID()
	assert.False(t, isID)
	assert.Equal(t, "room_number", output.ReferenceKind)
}

func TestHandler_Execute_Errors(t *testing.T) {
	handler := newTestHandler(t, &fakeResolver{})

	_, err := handler.Execute(context.Background(), decodeInput(t, `{}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = handler.Execute(context.Background(), decodeInput(t, `{"location": "Room 999"}`))
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), `"Room 999"`)
}
