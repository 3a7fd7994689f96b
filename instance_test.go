// File: flight-configuration/instance_test.go
package configuration_test

import (
	"testing"
	"time"

	configuration "github.com/openflighthpc/flight-configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *configuration.Instance {
	t.Helper()

	reg := configuration.NewRegistry().
		MustDeclare(configuration.AttributeSpec{Name: "server.host", Default: "localhost"}).
		MustDeclare(configuration.AttributeSpec{
			Name: "server.port", Default: "8080", Transform: configuration.ToInt,
		}).
		MustDeclare(configuration.AttributeSpec{Name: "server.timeout", Default: "5s"}).
		MustDeclare(configuration.AttributeSpec{
			Name: "debug", Default: true, Transform: configuration.ToBool,
		}).
		MustDeclare(configuration.AttributeSpec{
			Name: "ratio", Default: "0.25", Transform: configuration.ToFloat,
		})

	inst, err := configuration.NewLoader(reg).
		WithEnvLookup(envFrom(nil)).
		Load()
	require.NoError(t, err)
	return inst
}

func TestInstanceAccessors(t *testing.T) {
	inst := loadFixture(t)

	t.Run("Typed Access", func(t *testing.T) {
		host, err := inst.String("server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)

		port, err := inst.Int64("server.port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), port)

		debug, err := inst.Bool("debug")
		require.NoError(t, err)
		assert.True(t, debug)

		ratio, err := inst.Float64("ratio")
		require.NoError(t, err)
		assert.Equal(t, 0.25, ratio)
	})

	t.Run("Cross Type Conversion", func(t *testing.T) {
		// server.port resolved to int64; String converts it back.
		port, err := inst.String("server.port")
		require.NoError(t, err)
		assert.Equal(t, "8080", port)
	})

	t.Run("Undeclared Key", func(t *testing.T) {
		_, err := inst.String("nonexistent")
		require.Error(t, err)
		assert.ErrorIs(t, err, configuration.ErrNotSet)

		_, ok := inst.Get("nonexistent")
		assert.False(t, ok)
	})
}

func TestInstanceScan(t *testing.T) {
	type serverSection struct {
		Host    string        `toml:"host"`
		Port    int           `toml:"port"`
		Timeout time.Duration `toml:"timeout"`
	}
	type settings struct {
		Server serverSection `toml:"server"`
		Debug  bool          `toml:"debug"`
	}

	inst := loadFixture(t)

	var got settings
	require.NoError(t, inst.Scan(&got))

	assert.Equal(t, "localhost", got.Server.Host)
	assert.Equal(t, 8080, got.Server.Port)
	assert.Equal(t, 5*time.Second, got.Server.Timeout)
	assert.True(t, got.Debug)

	t.Run("Rejects Non Pointer Target", func(t *testing.T) {
		var bad settings
		assert.Error(t, inst.Scan(bad))
	})
}

func TestInstanceDebug(t *testing.T) {
	file := writeFile(t, t.TempDir(), "config.yaml", "host: filehost\nsurplus: 1\n")

	reg := configuration.NewRegistry().
		MustDeclare(configuration.AttributeSpec{Name: "host", Env: true}).
		MustDeclare(configuration.AttributeSpec{Name: "mode", Default: "quiet"})

	inst, err := configuration.NewLoader(reg).
		WithEnvLookup(envFrom(nil)).
		WithFiles(file).
		Load()
	require.NoError(t, err)

	out := inst.Debug()
	assert.Contains(t, out, "host:")
	assert.Contains(t, out, "file "+file)
	assert.Contains(t, out, "Source: default")
	assert.Contains(t, out, "Recognized: false")
}

func TestInstanceFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.yaml", "x: 1\n")
	second := writeFile(t, dir, "b.yaml", "y: 2\n")

	reg := configuration.NewRegistry().
		MustDeclare(configuration.AttributeSpec{Name: "x"}).
		MustDeclare(configuration.AttributeSpec{Name: "y"})

	inst, err := configuration.NewLoader(reg).
		WithEnvLookup(envFrom(nil)).
		WithFiles(first, second).
		Load()
	require.NoError(t, err)

	assert.Equal(t, []string{first, second}, inst.Files())
}
