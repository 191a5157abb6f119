package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyp3rd/streamstats"
	"github.com/hyp3rd/streamstats/pkg/middleware"
)

func main() {
	digest, err := streamstats.NewDigest(
		streamstats.WithQuantiles(0.5, 0.9, 0.99),
		streamstats.WithHistogram(20, 0, 2),
	)
	if err != nil {
		fmt.Println(err)

		return
	}

	logger := log.New(os.Stdout, "streamstats: ", log.LstdFlags)

	svc := streamstats.ApplyMiddleware(digest, func(next streamstats.Service) streamstats.Service {
		return middleware.NewLoggingMiddleware(next, logger)
	})

	ctx := context.Background()

	// Simulate a stream of request latencies.
	rng := rand.New(rand.NewPCG(1, 2))
	samples := make([]float64, 0, 10000)

	for range cap(samples) {
		samples = append(samples, rng.ExpFloat64()/5)
	}

	err = svc.Observe(ctx, samples...)
	if err != nil {
		fmt.Println("samples were rejected:", err)

		return
	}

	summary := svc.Summary(ctx)
	fmt.Printf("observed %d samples\n", summary.Len)
	fmt.Printf("mean %.4f stddev %.4f skewness %.4f kurtosis %.4f\n",
		summary.Mean, summary.StandardDeviation, summary.Skewness, summary.Kurtosis)

	for _, q := range summary.Quantiles {
		fmt.Printf("p%.0f %.4f\n", q.Probability*100, q.Value)
	}

	srv := streamstats.NewManagementHTTPServer(":8080")

	err = srv.Start(ctx, digest)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println("management server listening on", srv.Address())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		fmt.Println(err)
	}
}
