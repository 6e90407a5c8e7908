package postgres

import (
	"github.com/google/wire"

	"github.com/inkpress/inkpress/internal/posts/ports"
)

// ProviderSet is the wire provider set for postgres repositories.
var ProviderSet = wire.NewSet(
	NewPostRepository,
	NewSlugRepository,
	NewArchiveRepository,
	wire.Bind(new(ports.PostRepository), new(*PostRepository)),
	wire.Bind(new(ports.SlugRepository), new(*SlugRepository)),
	wire.Bind(new(ports.ArchiveRepository), new(*ArchiveRepository)),
)
