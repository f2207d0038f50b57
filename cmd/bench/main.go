// Command bench runs a synthetic memoization workload against a namespace
// registry and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nscache/nscache/cache"
	"github.com/nscache/nscache/duration"
	"github.com/nscache/nscache/metrics/prom"
	"github.com/nscache/nscache/registry"
)

func main() {
	// ---- Flags ----
	var (
		policy = flag.String("policy", "lru", "eviction policy: none | lru | ttl | lru-ttl")
		limit  = flag.Int("limit", 100_000, "entry limit for lru policies")
		ttl    = flag.String("ttl", "30s", "ttl for ttl policies (e.g. 500ms, 1.5h)")
		mode   = flag.String("mode", "fixed", "ttl mode: fixed | sliding")
		shards = flag.Int("shards", 0, "number of shards per namespace (0=auto)")

		namespaces = flag.Int("namespaces", 4, "number of namespaces to spread load over")
		workers    = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		runFor     = flag.Duration("duration", 10*time.Second, "benchmark duration")

		keys  = flag.Int("keys", 1_000_000, "keyspace size per namespace")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- Policy from flags ----
	ttlMode := cache.TTLFixed
	if *mode == "sliding" {
		ttlMode = cache.TTLSliding
	}
	var pol cache.Policy
	switch *policy {
	case "none":
		pol = cache.NoEviction()
	case "lru":
		pol = cache.CapacityBounded(*limit)
	case "ttl":
		d, err := duration.Parse(*ttl)
		if err != nil {
			log.Fatalf("bad -ttl: %v", err)
		}
		pol = cache.TimeBounded(d, ttlMode)
	case "lru-ttl":
		d, err := duration.Parse(*ttl)
		if err != nil {
			log.Fatalf("bad -ttl: %v", err)
		}
		pol = cache.CapacityAndTime(*limit, d, ttlMode)
	default:
		log.Fatalf("unknown policy: %q (use none, lru, ttl or lru-ttl)", *policy)
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Registry with per-namespace Prometheus collectors ----
	reg := registry.New(
		registry.WithShards(*shards),
		registry.WithMetrics(prom.PerNamespace(nil, "nscache", "bench")),
	)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Load generation ----
	nsNames := make([]string, *namespaces)
	for i := range nsNames {
		nsNames[i] = "bench-" + strconv.Itoa(i)
	}

	var computes uint64
	computeFor := func(k string) func(context.Context) (any, error) {
		return func(context.Context) (any, error) {
			atomic.AddUint64(&computes, 1)
			return "v:" + k, nil
		}
	}

	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}
	keysMax := uint64(*keys - 1)

	ctx, cancel := context.WithTimeout(context.Background(), *runFor)
	defer cancel()

	start := time.Now()
	var total uint64
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(*seed + int64(id)*9973))
			localZipf := rand.NewZipf(localR, *zipfS, *zipfV, keysMax)
			ns := nsNames[id%len(nsNames)]

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				k := "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
				if _, err := reg.GetOrCompute(ctx, ns, k, pol, computeFor(k)); err != nil {
					log.Printf("GetOrCompute: %v", err)
					return
				}
				atomic.AddUint64(&total, 1)
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	fmt.Printf("policy=%s namespaces=%d workers=%d keys=%d dur=%v seed=%d\n",
		pol, *namespaces, workersN, *keys, elapsed, *seed)
	fmt.Printf("ops=%d (%.0f ops/s)  computes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), atomic.LoadUint64(&computes))
	fmt.Println()
	if err := reg.WriteTable(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
