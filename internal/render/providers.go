package render

import (
	"github.com/google/wire"

	"github.com/inkpress/inkpress/internal/posts/ports"
)

// ProviderSet is the wire provider set for the HTML renderer.
var ProviderSet = wire.NewSet(
	NewHTMLRenderer,
	wire.Bind(new(ports.Renderer), new(*HTMLRenderer)),
)
