package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"poolburn/testserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	poolSize := flag.Int("pool-size", 50, "database connection pool size")
	slowQuery := flag.Duration("slow-query", 2500*time.Millisecond, "slow query duration")
	fastQuery := flag.Duration("fast-query", 2*time.Millisecond, "fast query duration")
	acquireTimeout := flag.Duration("acquire-timeout", 30*time.Second, "pool acquire timeout")
	flag.Parse()

	srv := testserver.NewServer(testserver.Options{
		PoolSize:       *poolSize,
		SlowQueryTime:  *slowQuery,
		FastQueryTime:  *fastQuery,
		AcquireTimeout: *acquireTimeout,
	})

	fmt.Printf("Simulated backend listening on %s (pool %d, slow %v, fast %v)\n",
		*addr, *poolSize, *slowQuery, *fastQuery)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
