package interfaces

//go:generate go tool moq -out ../mock/mock_gen.go -pkg mock -rm -stub . ChallengeVerifier DomainIntel Enricher KVStore AnalyzeUsecases
