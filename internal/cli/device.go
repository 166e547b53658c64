package cli

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tessro/aiosctl/internal/aios"
	"github.com/tessro/aiosctl/internal/errors"
	"github.com/tessro/aiosctl/internal/monitor"
)

// newDevice builds a receiver client from the loaded config. One HTTP
// client carries the configured timeout for every call.
func newDevice() (*aios.Device, error) {
	if cfg.Device.Host == "" {
		return nil, errors.ErrNoHost
	}
	httpClient := &http.Client{Timeout: cfg.Device.TimeoutDuration()}
	return aios.NewDevice(httpClient, cfg.Device.Host,
		aios.WithPort(cfg.Device.Port),
		aios.WithLogger(slog.Default()),
	), nil
}

type identitySource interface {
	Setup(ctx context.Context) error
	Identity() (aios.DeviceIdentity, bool)
}

// deviceIdentity runs Setup and returns the identity it recorded.
func deviceIdentity(ctx context.Context, d identitySource) (aios.DeviceIdentity, error) {
	if err := d.Setup(ctx); err != nil {
		return aios.DeviceIdentity{}, err
	}
	id, ok := d.Identity()
	if !ok {
		return aios.DeviceIdentity{}, errors.ErrNotSetUp
	}
	return id, nil
}

func volumeControl() monitor.VolumeControl {
	vc, err := monitor.ParseVolumeControl(cfg.Device.VolumeControl)
	if err != nil {
		return monitor.VolumeExternal
	}
	return vc
}

// requireExternalVolume refuses ACT volume commands when the player owns volume.
func requireExternalVolume(vc monitor.VolumeControl) error {
	if vc != monitor.VolumeExternal {
		return errors.ErrVolumeControlInternal
	}
	return nil
}
