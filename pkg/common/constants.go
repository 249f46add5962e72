package common

const (
	// RedisStreamArticleAnalysis carries article links discovered by the ingestion
	// service to the analyzer consumer.
	RedisStreamArticleAnalysis = "article.analysis"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"

	// RedisKeyAnalysisCachePrefix prefixes cached analysis results.
	RedisKeyAnalysisCachePrefix = "analysis:result:"
)
