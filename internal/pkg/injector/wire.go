//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/lk2023060901/ai-summarizer/internal/conf"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/biz"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/service"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/upstream"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/server"
)

// ProviderSet is the Wire provider set for all dependencies
var ProviderSet = wire.NewSet(
	// Outbound client
	upstreamProviderSet,

	// Use cases
	useCaseProviderSet,

	// HTTP services
	httpServiceProviderSet,

	// Servers
	serverProviderSet,
)

var upstreamProviderSet = wire.NewSet(
	provideUpstreamConfig,
	provideUpstreamClient,
	wire.Bind(new(biz.Upstream), new(*upstream.Client)),
)

var useCaseProviderSet = wire.NewSet(
	biz.NewForwardUseCase,
	wire.Bind(new(service.Forwarder), new(*biz.ForwardUseCase)),
)

var httpServiceProviderSet = wire.NewSet(
	provideServiceConfig,
	service.NewGatewayService,
)

var serverProviderSet = wire.NewSet(
	provideAPIMiddleware,
	server.NewHTTPServer,
)

// InitializeApp initializes the application with Wire
func InitializeApp(config *conf.Config, log *logger.Logger) (*App, func(), error) {
	wire.Build(ProviderSet, newApp)
	return nil, nil, nil
}
