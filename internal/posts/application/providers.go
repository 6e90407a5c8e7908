package application

import (
	"github.com/google/wire"

	"github.com/inkpress/inkpress/internal/posts/ports"
)

// ProviderSet is the wire provider set for the posts application layer.
var ProviderSet = wire.NewSet(
	NewRevisionService,
	wire.Bind(new(ports.RevisionCoordinator), new(*RevisionService)),
)
