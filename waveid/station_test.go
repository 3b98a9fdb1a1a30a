package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/session"
)

func TestNewStation(t *testing.T) {
	ch := acquire.ChannelFunc(func() acquire.Reading { return acquire.Reading{Value: 512} })

	tests := []struct {
		name    string
		modify  func(cfg *config.Config)
		wantErr string
	}{
		{name: "defaults"},
		{
			name:    "unknown classifier",
			modify:  func(cfg *config.Config) { cfg.Classifier.Strategy = "fourier" },
			wantErr: "fourier",
		},
		{
			name:    "unknown language",
			modify:  func(cfg *config.Config) { cfg.Presentation.Language = "fr" },
			wantErr: "fr",
		},
		{
			name:    "buffer too small",
			modify:  func(cfg *config.Config) { cfg.Acquisition.Samples = 2 },
			wantErr: "2 samples",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.modify != nil {
				tt.modify(cfg)
			}
			var start, show control.Latch
			lcd := display.NewText(display.Columns, display.Rows)

			st, err := newStation(cfg, ch, clock.NewSim(time.Unix(0, 0)), lcd, &start, &show, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, session.Idle, st.ctl.State())
			assert.Nil(t, st.diag)
			st.close()
		})
	}
}
