package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/auth"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/config"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/logger"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/service"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/store"
)

// consoleNotifier prints user-facing messages (stand-in for the UI toast).
type consoleNotifier struct{}

func (consoleNotifier) Success(message string) { fmt.Println("[OK] " + message) }
func (consoleNotifier) Error(message string)   { fmt.Println("[!] " + message) }

// consoleNavigator records where the screen would go next.
type consoleNavigator struct {
	done chan string
}

func (n *consoleNavigator) Push(route string) {
	select {
	case n.done <- route:
	default:
	}
}

func main() {
	var labNumber = flag.String("lab-number", "", "Lab order number for this entry session")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "glucose-entry")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)
	handoff := store.NewHandoffStore(kv)

	tokens := auth.NewCookieFileTokenSource(cfg.Auth.CookieFile)
	client := service.NewBackendClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		tokens,
		log,
	)

	form := service.NewFormState()
	loader := service.NewPatientLoader(handoff, log)
	navigator := &consoleNavigator{done: make(chan string, 1)}
	entry := service.NewGlucoseEntryService(form, loader, handoff, client, consoleNotifier{}, navigator, log)

	ctx := context.Background()
	entry.Open(ctx, *labNumber)

	patient := entry.Patient()
	if patient == nil {
		// No usable patient context; the form stays blocked.
		os.Exit(1)
	}
	printPatient(patient, *labNumber)
	printDevices(entry.Devices())

	promptDraft(form)

	entry.Submit(ctx)

	// Wait for the deferred navigation that follows a successful save
	// (or a session-expired redirect). Nothing arriving means the draft
	// was kept for a retry; the operator reruns the command.
	select {
	case route := <-navigator.done:
		fmt.Println("-> " + route)
	case <-time.After(3 * time.Second):
	}
}

func printPatient(p *models.Patient, labNumber string) {
	if labNumber != "" {
		fmt.Printf("Lab Number: %s\n", labNumber)
	}
	fmt.Printf("Patient: %s (%s)\n", p.Name, p.PatientCode)
	fmt.Printf("Gender:  %s\n", p.Gender)
	fmt.Printf("NIK:     %s\n", p.NIK)
	if age := models.CalculateAge(p.DateOfBirth, time.Now()); age != "" {
		fmt.Printf("Age:     %s\n", age)
	}
	if barcode := p.BarcodeValue(); barcode != "" {
		fmt.Printf("Barcode: %s\n", barcode)
	}
}

func printDevices(devices []models.Device) {
	if len(devices) == 0 {
		return
	}
	fmt.Println("Devices:")
	for _, d := range devices {
		fmt.Printf("  - %s\n", d.Label())
	}
}

// promptDraft fills the draft field by field; empty input keeps the default.
func promptDraft(form *service.FormState) {
	scanner := bufio.NewScanner(os.Stdin)
	draft := form.Draft()

	if v := prompt(scanner, fmt.Sprintf("Date & Time [%s]", draft.DateTime)); v != "" {
		form.SetDateTime(v)
	}
	if v := prompt(scanner, "Glucose Value (e.g., 120 or Low/High)"); v != "" {
		form.SetGlucoseValue(v)
	}
	if v := prompt(scanner, fmt.Sprintf("Unit %v [%s]", models.Units, draft.Unit)); v != "" {
		form.SetUnit(v)
	}
	if v := prompt(scanner, "Device Name [Manual Input]"); v != "" {
		form.SetDeviceName(v)
	}
	if v := prompt(scanner, "Notes"); v != "" {
		form.SetNote(v)
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
