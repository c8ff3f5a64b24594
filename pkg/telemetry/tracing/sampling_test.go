package tracing

import (
	"testing"
)

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{name: "always", strategy: SamplerAlways},
		{name: "empty defaults to always", strategy: ""},
		{name: "never", strategy: SamplerNever},
		{name: "ratio 0", strategy: SamplerRatio, ratio: 0.0},
		{name: "ratio 0.5", strategy: SamplerRatio, ratio: 0.5},
		{name: "ratio 1", strategy: SamplerRatio, ratio: 1.0},
		{name: "ratio negative", strategy: SamplerRatio, ratio: -0.1, wantErr: true},
		{name: "ratio above one", strategy: SamplerRatio, ratio: 1.5, wantErr: true},
		{name: "unknown strategy", strategy: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && sampler == nil {
				t.Error("Expected sampler, got nil")
			}
		})
	}
}
