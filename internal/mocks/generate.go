package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FootballFeed --dir ../usecase --output usecase --outpkg usecasemock --filename football_feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CricketFeed --dir ../usecase --output usecase --outpkg usecasemock --filename cricket_feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OddsProvider --dir ../usecase --output usecase --outpkg usecasemock --filename odds_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/rawdata --output domain/rawdata --outpkg rawdatamock --filename repository_mock.go
