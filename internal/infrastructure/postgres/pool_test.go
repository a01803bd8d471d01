package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/factory-api/pkg/config"
)

func TestPoolLimits(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DBConfig
		opts    PoolOptions
		wantMax int32
		wantMin int32
	}{
		{"desde config", config.DBConfig{MaxConns: 10, MinConns: 3}, PoolOptions{}, 10, 3},
		{"max sin configurar", config.DBConfig{MinConns: 2}, PoolOptions{}, 25, 2},
		{"override del proceso", config.DBConfig{MaxConns: 10, MinConns: 3}, PoolOptions{MaxConns: 2, MinConns: 1}, 2, 1},
		{"min acotado al max", config.DBConfig{MaxConns: 4, MinConns: 8}, PoolOptions{}, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMax, gotMin := poolLimits(tt.cfg, tt.opts)
			assert.Equal(t, tt.wantMax, gotMax)
			assert.Equal(t, tt.wantMin, gotMin)
		})
	}
}
