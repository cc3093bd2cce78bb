package di

import (
	"context"

	"pledgeboard-backend/application/ports"
	appqueries "pledgeboard-backend/application/queries"
	querybus "pledgeboard-backend/application/queries/bus"
	queries_handlers "pledgeboard-backend/application/queries/handlers"
	appservices "pledgeboard-backend/application/services"
	domainservices "pledgeboard-backend/domain/services"
	"pledgeboard-backend/infrastructure/config"
	cachedecorator "pledgeboard-backend/infrastructure/persistence/cache"
	"pledgeboard-backend/infrastructure/persistence/dynamodb"
	memcache "pledgeboard-backend/pkg/cache"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogger creates a new logger instance honoring LOG_LEVEL
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideInMemoryCache creates a simple in-memory cache.
// Read traffic is modest and the data is public, so an in-process cache is
// enough; swap for Redis behind the same port if a multi-instance deployment
// ever needs shared state.
func ProvideInMemoryCache() ports.Cache {
	return memcache.New()
}

// ProvideRoleIdentityRepository creates a role identity repository wrapped
// with the TTL cache decorator
func ProvideRoleIdentityRepository(
	client *awsdynamodb.Client,
	cache ports.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) ports.RoleIdentityRepository {
	inner := dynamodb.NewRoleIdentityRepository(client, cfg.DynamoDBTable, logger)
	return cachedecorator.NewCachedRoleIdentityRepository(inner, cache, cfg.RoleCacheTTL, logger)
}

// ProvideTenureRepository creates a tenure record repository
func ProvideTenureRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TenureRepository {
	return dynamodb.NewTenureRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideSessionRepository creates a session repository
func ProvideSessionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.SessionRepository {
	return dynamodb.NewSessionRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEvidenceRepository creates an evidence record repository
func ProvideEvidenceRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.EvidenceRepository {
	return dynamodb.NewEvidenceRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideCommitmentRepository creates a commitment repository
func ProvideCommitmentRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CommitmentRepository {
	return dynamodb.NewCommitmentRepository(client, cfg.DynamoDBTable, cfg.SessionIndexName, logger)
}

// ProvideTenureResolver creates the officeholder tenure resolver
func ProvideTenureResolver(logger *zap.Logger) *domainservices.TenureResolver {
	return domainservices.NewTenureResolver(logger)
}

// ProvideEvidenceWindow creates the evidence window filter
func ProvideEvidenceWindow(logger *zap.Logger) *domainservices.EvidenceWindow {
	return domainservices.NewEvidenceWindow(logger)
}

// ProvideIdentityRemapper creates the historical identity remapper
func ProvideIdentityRemapper(roles ports.RoleIdentityRepository, logger *zap.Logger) *appservices.IdentityRemapper {
	return appservices.NewIdentityRemapper(roles, logger)
}

// ProvideEvidenceFetcher creates the chunked evidence batch fetcher
func ProvideEvidenceFetcher(repo ports.EvidenceRepository, cfg *config.Config, logger *zap.Logger) *appservices.EvidenceFetcher {
	return appservices.NewEvidenceFetcher(repo, cfg.EvidenceBatchSize, cfg.FetchConcurrency, logger)
}

// ProvideQueryBus creates a query bus with registered handlers. Officeholder
// resolution is cached briefly; evidence timelines are not, so a freshly
// linked source shows up on the next page load.
func ProvideQueryBus(
	sessionRepo ports.SessionRepository,
	roleRepo ports.RoleIdentityRepository,
	tenureRepo ports.TenureRepository,
	commitmentRepo ports.CommitmentRepository,
	remapper *appservices.IdentityRemapper,
	resolver *domainservices.TenureResolver,
	fetcher *appservices.EvidenceFetcher,
	window *domainservices.EvidenceWindow,
	cache ports.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	caching := querybus.NewCachingMiddleware(cache, cfg.QueryCacheTTL)

	officeholderHandler := queries_handlers.NewResolveOfficeholderHandler(
		sessionRepo, roleRepo, tenureRepo, remapper, resolver, logger,
	)
	queryBus.Register(appqueries.ResolveOfficeholderQuery{}, caching.Wrap(officeholderHandler))

	evidenceHandler := queries_handlers.NewCommitmentEvidenceHandler(
		commitmentRepo, sessionRepo, fetcher, window, logger,
	)
	queryBus.Register(appqueries.GetCommitmentEvidenceQuery{}, evidenceHandler)

	sessionCommitmentsHandler := queries_handlers.NewSessionCommitmentsHandler(
		sessionRepo, commitmentRepo, fetcher, window, logger,
	)
	queryBus.Register(appqueries.ListSessionCommitmentsQuery{}, sessionCommitmentsHandler)

	return queryBus
}
