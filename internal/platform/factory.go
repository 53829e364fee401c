package platform

import (
	"context"

	"github.com/aretw0/jupypod/pkg/notebook"
)

// New builds a notebook service on top of the storage selected by opts and
// restores the stored notebook.
//
// svc, err := jupypod.New("./notes", jupypod.WithAdapter("bolt"))
func New(uri string, opts ...Option) (*notebook.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := initRepository(uri, o)
	if err != nil {
		return nil, err
	}

	svcOpts := []notebook.Option{
		notebook.WithLogger(o.logger),
		notebook.WithStorageKey(o.storageKey),
		notebook.WithSerializer(o.serializer),
		notebook.WithAlerter(o.alerter),
	}
	if o.idgen != nil {
		svcOpts = append(svcOpts, notebook.WithIDGenerator(o.idgen))
	}
	service := notebook.NewService(repo, svcOpts...)

	restore := true
	if val, ok := o.config["restore"].(bool); ok {
		restore = val
	}
	if restore {
		if err := service.Restore(context.Background()); err != nil {
			_ = service.Close()
			return nil, err
		}
	}

	return service, nil
}
