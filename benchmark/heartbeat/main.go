package main

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/urfave/cli"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	pb "liyu1981.xyz/iot-heartbeat-service/pkg/grpc/heartbeat_service"
)

type simulatedDevice struct {
	DeviceID       string  `json:"device_id"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	BatteryLevel   float64 `json:"battery_level"`
	SignalStrength float64 `json:"signal_strength"`
}

var sensors = []simulatedDevice{
	{DeviceID: "sensor-001", Name: "Temperature Sensor - Living Room", Location: "Living Room", BatteryLevel: 85, SignalStrength: -45},
	{DeviceID: "sensor-002", Name: "Humidity Sensor - Kitchen", Location: "Kitchen", BatteryLevel: 92, SignalStrength: -52},
	{DeviceID: "sensor-003", Name: "Motion Sensor - Front Door", Location: "Front Door", BatteryLevel: 78, SignalStrength: -48},
	{DeviceID: "sensor-004", Name: "Light Sensor - Bedroom", Location: "Bedroom", BatteryLevel: 45, SignalStrength: -55},
	{DeviceID: "sensor-005", Name: "Security Camera - Backyard", Location: "Backyard", BatteryLevel: 15, SignalStrength: -60},
}

var httpHostPort string
var grpcHostPort string

var grpcClient pb.HeartbeatServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	app := cli.NewApp()
	app.Name = "heartbeat-simulator"
	app.Usage = "Send heartbeats for simulated devices over HTTP and gRPC"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "http", Value: "127.0.0.1:1080", Destination: &httpHostPort, Usage: "HTTP `HOST:PORT`"},
		cli.StringFlag{Name: "grpc", Value: "127.0.0.1:10801", Destination: &grpcHostPort, Usage: "gRPC `HOST:PORT`, empty to use HTTP only"},
		cli.IntFlag{Name: "devices", Value: 0, Usage: "extra random devices on top of the five named sensors"},
		cli.IntFlag{Name: "rounds", Value: 3, Usage: "heartbeats sent per device"},
		cli.DurationFlag{Name: "interval", Value: time.Second, Usage: "upper bound of the random pause between heartbeats"},
	}
	app.Action = simulate

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func simulate(c *cli.Context) error {
	devices := append([]simulatedDevice{}, sensors...)
	for range c.Int("devices") {
		devices = append(devices, simulatedDevice{
			DeviceID:       uuid.NewString(),
			Name:           "Simulated Sensor",
			Location:       "Lab",
			BatteryLevel:   rndFloat64(0, 100, 1),
			SignalStrength: rndFloat64(-90, -30, 1),
		})
	}
	fmt.Printf("simulating %v devices\n", len(devices))

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		return fmt.Errorf("failed to connect to HTTP server: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP server not available")
	}
	fmt.Printf("http server verified\n")

	if grpcHostPort != "" {
		conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("failed to connect to gRPC server: %w", err)
		}
		defer conn.Close()
		grpcClient = pb.NewHeartbeatServiceClient(conn)
		fmt.Printf("gRPC client connected\n")
	}

	rounds := c.Int("rounds")
	interval := c.Duration("interval")

	var sent, failed atomic.Int64
	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := range devices {
		wg.Add(1)
		go func(device *simulatedDevice) {
			defer wg.Done()
			for range rounds {
				// occasionally go quiet to exercise at-risk and offline
				if rndInt(100) < 5 {
					fmt.Printf("\r%v temporarily offline (simulated failure)\n", device.Name)
				} else if status, err := sendHeartbeat(device); err != nil {
					failed.Add(1)
					fmt.Printf("\nerror for %v: %v\n", device.DeviceID, err)
				} else {
					sent.Add(1)
					fmt.Printf("\r%v heartbeat sent - status: %v", device.DeviceID, status)
				}
				time.Sleep(time.Duration(rndInt(int(interval.Milliseconds())+1)) * time.Millisecond)
			}
		}(&devices[i])
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\n\rsent %v heartbeats (%v failed): used time=%v seconds, throughput=%v heartbeat/second\n",
		sent.Load(), failed.Load(), usedTime.Seconds(), float64(sent.Load())/usedTime.Seconds(),
	)
	return nil
}

func rndInt(n int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	if n <= 0 {
		return 0
	}
	return rnd.Intn(n)
}

func flipCoin() bool {
	return rndInt(2) == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func sendHeartbeat(device *simulatedDevice) (string, error) {
	device.BatteryLevel = math.Max(0, math.Min(100, device.BatteryLevel+rndFloat64(-2, 1, 2)))
	device.SignalStrength += rndFloat64(-3, 2, 2)

	if grpcClient == nil || flipCoin() {
		jsonData, _ := json.Marshal(device)
		resp, err := http.Post(fmt.Sprintf("http://%s/heartbeat", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("response status code %v", resp.StatusCode)
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", err
		}
		return body.Status, nil
	}

	req, err := structpb.NewStruct(map[string]any{
		"device_id":       device.DeviceID,
		"name":            device.Name,
		"location":        device.Location,
		"battery_level":   device.BatteryLevel,
		"signal_strength": device.SignalStrength,
	})
	if err != nil {
		return "", err
	}
	resp, err := grpcClient.PostHeartbeat(context.Background(), req)
	if err != nil {
		return "", err
	}
	return resp.Fields["status"].GetStringValue(), nil
}
