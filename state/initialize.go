package state

import (
	"fmt"
	"time"

	"mailedit/assets"
	"mailedit/brandkit"
	"mailedit/config"
	"mailedit/store"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Brands: brandkit.NewStatic(),
	}
}

// OpenStores wires the template store and the asset library according to
// the loaded configuration. Commands that never touch storage skip this.
func (e *LocalEnv) OpenStores() error {
	if e.Cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}

	var err error
	switch e.Cfg.StoreMode() {
	case config.StoreModeRemote:
		e.Store = store.NewRemote(e.Cfg.Remote.BaseURL, e.Cfg.Remote.AuthToken, e.Log)
	default:
		if e.Store, err = store.OpenSQLite(e.Cfg.Storage.DatabasePath, e.Log); err != nil {
			return err
		}
	}
	if e.Assets, err = assets.NewLibrary(e.Cfg.Storage.AssetsDir, e.Log); err != nil {
		return err
	}
	return nil
}

// CloseStores releases storage resources opened by OpenStores.
func (e *LocalEnv) CloseStores() error {
	if e.Store == nil {
		return nil
	}
	err := e.Store.Close()
	e.Store = nil
	return err
}
