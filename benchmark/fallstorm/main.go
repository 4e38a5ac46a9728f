package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"liyu1981.xyz/guardian-alert-service/pkg/auth"
	"liyu1981.xyz/guardian-alert-service/pkg/gateway"
)

var maxWearers int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var client *gateway.Client
var verifier *auth.Verifier

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var failures atomic.Int64

func main() {
	var err error

	secret := os.Getenv("GUARDIAN_JWT_SECRET")
	if secret == "" {
		log.Fatal("GUARDIAN_JWT_SECRET must match the server's secret")
	}
	verifier, err = auth.NewVerifier(secret, os.Getenv("GUARDIAN_JWT_ALGORITHM"))
	if err != nil {
		log.Fatal("Failed to create signer:", err)
	}

	personIDs := make([]string, maxWearers)
	for i := range maxWearers {
		personIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v wearer IDs\n", maxWearers)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	client = gateway.NewClient(conn)

	fmt.Printf("gRPC gateway connected\n")

	var startTime time.Time
	var usedTime time.Duration

	// every wearer falls twice on the same day; the second report must land
	// on the same check-in row
	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxWearers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reportFall(personIDs[i])
			reportFall(personIDs[i])
			fmt.Printf("\rreported falls for wearer %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rreported falls for %v wearers: used time=%v seconds, throughput=%v report/second\n",
		maxWearers, usedTime.Seconds(), float64(maxWearers*2)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxWearers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reportStatus("m5-" + personIDs[i][:8])
			readLatestCheckIn(personIDs[i])
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rstatus + read for %v wearers: used time=%v seconds, throughput=%v action/second\n",
		maxWearers, usedTime.Seconds(), float64(maxWearers*2)/usedTime.Seconds(),
	)
	fmt.Printf("failures: %v\n", failures.Load())
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func reportFall(personID string) {
	token, err := verifier.Sign(personID, time.Minute)
	if err != nil {
		panic(err)
	}

	resp, err := client.ReportFall(context.Background(), map[string]any{
		"token":     token,
		"deviceId":  "m5-" + personID[:8],
		"timestamp": time.Now().UnixMilli(),
		"impact":    rndFloat64(1.5, 6.0, 2),
	})
	if err != nil {
		failures.Add(1)
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	if resp["status"] == gateway.StatusDegraded {
		failures.Add(1)
		fmt.Printf("\ndegraded: %v\n", resp)
	}
}

func reportStatus(deviceID string) {
	_, err := client.ReportStatus(context.Background(), map[string]any{
		"deviceId":     deviceID,
		"batteryLevel": rndFloat64(0.0, 100.0, 1),
		"wifiStrength": rndFloat64(-90.0, -30.0, 0),
	})
	if err != nil {
		failures.Add(1)
		fmt.Printf("\nerror: %v\n", err)
	}
}

func readLatestCheckIn(personID string) {
	resp, err := http.Get(fmt.Sprintf("http://%s/checkins/%s/latest", httpHostPort, personID))
	if err != nil {
		failures.Add(1)
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		failures.Add(1)
		fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
	}
}
