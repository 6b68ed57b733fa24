package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/robotalks/txtest/pkg/comm/mqtt"
	"github.com/robotalks/txtest/pkg/comm/stream"
	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/msgs"
)

var (
	mqttURL   = "mqtt://localhost:1883/"
	replay    string
	linesOnly bool
)

func init() {
	if val := os.Getenv("TXTEST_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&replay, "replay", replay, "Print events recorded in a file instead.")
	flag.BoolVar(&linesOnly, "lines", linesOnly, "Print diagnostic lines only.")
}

func formatPacket(topic string, payload []byte) (string, error) {
	if strings.HasSuffix(topic, "/online") {
		return fmt.Sprintf("%s: %s", topic, string(payload)), nil
	}
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		return "", fmt.Errorf("%s: bad message: %v", topic, err)
	}
	msg, err := typed.Decode()
	if err != nil {
		return "", fmt.Errorf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
	}
	if report, ok := msg.(*msgs.StatusReport); ok && linesOnly {
		return fmt.Sprintf("%s: %s", report.Device, report.Line), nil
	}
	return fmt.Sprintf("%s: #%d [%s] %s", topic, typed.Sequence,
		reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), msg.String()), nil
}

func printPacket(topic string, payload []byte) {
	out, err := formatPacket(topic, payload)
	if err != nil {
		log.Println(err)
		return
	}
	log.Println(out)
}

func replayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rw := stream.New(f)
	for {
		pkt, err := rw.ReadPacket()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		printPacket(path, pkt)
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	if replay != "" {
		if err := replayFile(replay); err != nil {
			log.Fatalln(err)
		}
		return
	}

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub("+/status", printPacket)
	q.Sub("+/online", printPacket)
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	runner := fx.NewRunner().HandleSignals()
	<-runner.Context.Done()
	q.Close()
}
