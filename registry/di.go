package registry

import (
	"context"

	yamlcodec "github.com/0xalexb/hjarta-kv/codec/yaml"
	"github.com/0xalexb/hjarta-kv/store"
	"github.com/0xalexb/hjarta-kv/store/file"

	"go.uber.org/fx"
)

// NewModule creates an Fx module providing a *Registry backed by YAML files.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally (e.g., via config.Provider).
// Every document is saved when the application stops.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(cfg))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(
			func() store.Store {
				return file.NewStore(yamlcodec.NewCodec())
			},
			New,
		),
		fx.Invoke(func(lifecycle fx.Lifecycle, reg *Registry) {
			lifecycle.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return reg.SaveAll()
				},
			})
		}),
	)

	return fx.Module("registry", moduleOpts...)
}
