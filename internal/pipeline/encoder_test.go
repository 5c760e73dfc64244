package pipeline

import (
	"sync"
	"testing"

	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncoders() model.EncoderSet {
	return model.EncoderSet{
		"channel": model.NewCategoryEncoder("channel", []string{"ATM", "POS", "WEB"}),
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		raw     model.RawFeatures
		want    model.FeatureVector
		wantErr error
	}{
		{
			name: "known category and numeric passthrough",
			raw:  model.RawFeatures{"channel": "POS", "amount": "12.5"},
			want: model.FeatureVector{"channel": 1, "amount": 12.5},
		},
		{
			name: "unseen category maps to unknown sentinel",
			raw:  model.RawFeatures{"channel": "Teleporter", "amount": "1"},
			want: model.FeatureVector{"channel": 3, "amount": 1},
		},
		{
			name: "zero-filled categorical goes through the sentinel",
			raw:  model.RawFeatures{"channel": "0", "amount": "1"},
			want: model.FeatureVector{"channel": 3, "amount": 1},
		},
		{
			name:    "non-numeric value outside the encoders fails loudly",
			raw:     model.RawFeatures{"channel": "ATM", "amount": "lots"},
			wantErr: common.ErrNonNumericFeature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.raw, testEncoders())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeUnseenCategoriesShareOneCode(t *testing.T) {
	encoders := testEncoders()

	first, err := Encode(model.RawFeatures{"channel": "Teleporter"}, encoders)
	require.NoError(t, err)
	second, err := Encode(model.RawFeatures{"channel": "Hologram"}, encoders)
	require.NoError(t, err)

	assert.Equal(t, first["channel"], second["channel"],
		"all unseen categories for one feature must share the sentinel code")
	assert.Equal(t, []string{"ATM", "POS", "WEB", model.UnknownCategory},
		encoders["channel"].Classes())
}

func TestEncodeConcurrentSentinelRegistration(t *testing.T) {
	encoders := testEncoders()

	var wg sync.WaitGroup
	codes := make([]float64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vec, err := Encode(model.RawFeatures{"channel": "Teleporter"}, encoders)
			assert.NoError(t, err)
			codes[i] = vec["channel"]
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, float64(3), code)
	}
	// Exactly one sentinel entry despite the concurrent check-then-insert.
	assert.Len(t, encoders["channel"].Classes(), 4)
}
