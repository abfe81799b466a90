package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/yourusername/print-order-board/config"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/infrastructure/auditlog"
	"github.com/yourusername/print-order-board/internal/infrastructure/notify"
	"github.com/yourusername/print-order-board/internal/infrastructure/sheets"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
	"github.com/yourusername/print-order-board/internal/usecase"
)

const usage = `usage: orderboard <command> [flags]

commands:
  specs                    list spec_master rows
  spec <media_id>          show one spec
  jobs [-month -status -vendor -media -q]
                           list jobs, newest first
  job <job_id>             show one job with its cost breakdown
  status <job_id> <status> [-by name] [-cost total]
                           move a job along the lifecycle
  vendors                  list active vendors
  export [-month ...] -o FILE
                           write the filtered job list as .xlsx
`

func main() {
	initDefaultTimezone()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx := context.Background()

	// 1. Spreadsheet client
	client, err := sheets.NewClient(ctx, cfg.SheetID, cfg.ServiceAccountEmail, cfg.ServiceAccountKey, zl)
	if err != nil {
		log.Fatalf("sheets client: %v", err)
	}

	// 2. Stores
	specs := sheets.NewSpecStore(client, zl)
	jobs := sheets.NewJobStore(client, zl)
	vendors := sheets.NewVendorStore(client, zl)
	pricing := sheets.NewVendorPricingStore(client, zl)

	// 3. Optional audit trail
	var audit usecase.AuditTrail
	if cfg.PostgresDSN != "" {
		trail, err := auditlog.New(cfg.PostgresDSN, zl)
		if err != nil {
			zl.Warn("audit trail disabled", "err", err)
		} else {
			defer trail.Close()
			audit = trail
		}
	}

	// 4. Optional group notification
	var notifier usecase.Notifier
	if cfg.TelegramToken != "" && cfg.NotifyChatID != 0 {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.NotifyChatID, cfg.NotifyThreadID, zl)
		if err != nil {
			zl.Warn("notification disabled", "err", err)
		} else {
			notifier = tn
		}
	}

	// 5. Application layer
	engine := usecase.NewPricingEngine(pricing, zl)
	orders := usecase.NewOrderService(specs, jobs, vendors, engine, notifier, audit, zl)

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(ctx, cmd, args, specs, jobs, vendors, orders); err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func run(ctx context.Context, cmd string, args []string,
	specs *sheets.SpecStore, jobs *sheets.JobStore, vendors *sheets.VendorStore,
	orders *usecase.OrderService) error {
	switch cmd {
	case "specs":
		return cmdSpecs(ctx, specs)
	case "spec":
		if len(args) < 1 {
			return fmt.Errorf("media_id required")
		}
		return cmdSpec(ctx, specs, args[0])
	case "jobs":
		return cmdJobs(ctx, jobs, args)
	case "job":
		if len(args) < 1 {
			return fmt.Errorf("job_id required")
		}
		return cmdJob(ctx, jobs, orders, args[0])
	case "status":
		if len(args) < 2 {
			return fmt.Errorf("job_id and status required")
		}
		return cmdStatus(ctx, orders, args)
	case "vendors":
		return cmdVendors(ctx, vendors)
	case "export":
		return cmdExport(ctx, orders, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdSpecs(ctx context.Context, specs *sheets.SpecStore) error {
	list, err := specs.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Printf("%-12s %-24s %s\n", s.MediaID, s.MediaName, s.DefaultVendor)
	}
	return nil
}

func cmdSpec(ctx context.Context, specs *sheets.SpecStore, mediaID string) error {
	spec, err := specs.GetByMediaID(ctx, mediaID)
	if err != nil {
		return err
	}
	if spec == nil {
		return fmt.Errorf("media_id %q not found", mediaID)
	}
	return printJSON(spec)
}

func cmdJobs(ctx context.Context, jobs *sheets.JobStore, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	filter := bindFilterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	list, err := jobs.List(ctx, *filter)
	if err != nil {
		return err
	}
	for _, j := range list {
		fmt.Printf("%-20s %-10s %-6s %-24s %s\n", j.JobID, datePart(j.CreatedAt), j.Status, j.MediaName, j.Vendor)
	}
	return nil
}

func cmdJob(ctx context.Context, jobs *sheets.JobStore, orders *usecase.OrderService, jobID string) error {
	job, err := jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %q not found", jobID)
	}
	if err := printJSON(job); err != nil {
		return err
	}
	if cost := orders.JobCost(ctx, *job); cost != nil {
		fmt.Printf("공급가 %d / 부가세 %d / 합계 %d\n", cost.Subtotal, cost.VAT, cost.Total)
	}
	return nil
}

func cmdStatus(ctx context.Context, orders *usecase.OrderService, args []string) error {
	jobID, status := args[0], args[1]
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	by := fs.String("by", "", "who is making the change")
	cost := fs.String("cost", "", "manual production cost total")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}
	job, err := orders.UpdateStatus(ctx, jobID, status, *by, *cost)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %q not found", jobID)
	}
	fmt.Printf("%s -> %s\n", job.JobID, job.Status)
	return nil
}

func cmdVendors(ctx context.Context, vendors *sheets.VendorStore) error {
	list, err := vendors.List(ctx)
	if err != nil {
		return err
	}
	for _, v := range list {
		fmt.Printf("%-36s %s\n", v.VendorID, v.VendorName)
	}
	return nil
}

func cmdExport(ctx context.Context, orders *usecase.OrderService, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	filter := bindFilterFlags(fs)
	out := fs.String("o", "", "output .xlsx path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*out) == "" {
		return fmt.Errorf("-o FILE required")
	}
	data, err := orders.BuildJobsXLSX(ctx, *filter)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(data))
	return nil
}

func bindFilterFlags(fs *flag.FlagSet) *entity.JobFilter {
	filter := &entity.JobFilter{}
	fs.StringVar(&filter.Month, "month", "", `"YYYY-MM" against created_at`)
	fs.StringVar(&filter.Status, "status", "", "lifecycle status")
	fs.StringVar(&filter.Vendor, "vendor", "", "vendor name or id")
	fs.StringVar(&filter.MediaID, "media", "", "media_id")
	fs.StringVar(&filter.Query, "q", "", "substring over id/requester/media")
	return filter
}

func datePart(createdAt string) string {
	if len(createdAt) >= 10 {
		return createdAt[:10]
	}
	return createdAt
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func initDefaultTimezone() {
	const tzName = "Asia/Seoul"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone("KST", 9*60*60)
}
