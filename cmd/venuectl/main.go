// venuectl is a command-line client for the venuebook API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"venuebook/internal/client"
	"venuebook/internal/modules/analytics"
)

const usage = `usage: venuectl <command> [flags]

commands:
  register   -email -password [-role admin|user]
  login      -email -password
  logout
  whoami
  venues
  blocked    <venue>
  book       -venue -date -name -email -phone -event -amount
  bookings   [-mine]
  venue-create   -name -description -location -capacity -price [-amenities a,b] [-image url]
  venue-delete   <venue>
  venue-block    <venue> <date>...
  venue-report   <venue>
  venue-bookings <venue>
  analytics  dashboard|revenue|bookings|venues|customers [-period 6months|1year]

<venue> is a numeric id, a slug or a venue name.
Environment: VENUEBOOK_API (default http://localhost:5000/api),
VENUEBOOK_SESSION (default ~/.venuebook/session.json).
`

type cli struct {
	api         *client.Client
	sess        *client.Session
	sessionPath string
	out         io.Writer
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sessionPath := envOr("VENUEBOOK_SESSION", defaultSessionPath())
	sess, err := client.LoadSession(sessionPath)
	if err != nil {
		fatal(err)
	}

	c := &cli{
		api:         client.New(envOr("VENUEBOOK_API", "http://localhost:5000/api")),
		sess:        sess,
		sessionPath: sessionPath,
		out:         os.Stdout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runErr := c.run(ctx, os.Args[1], os.Args[2:])

	// persist whatever the command did to the session, including a 401 clear
	if err := c.sess.Save(c.sessionPath); err != nil {
		fatal(err)
	}
	if runErr != nil {
		if errors.Is(runErr, client.ErrUnauthorized) || errors.Is(runErr, client.ErrNotLoggedIn) {
			fmt.Fprintln(os.Stderr, "not logged in; run `venuectl login` first")
		}
		fatal(runErr)
	}
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "password, at least 6 characters")
		role := fs.String("role", "", "admin or user")
		fs.Parse(args)
		if err := c.api.Register(ctx, c.sess, *email, *password, *role); err != nil {
			return err
		}
		return c.print(c.sess.User())

	case "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "password")
		fs.Parse(args)
		if err := c.api.Login(ctx, c.sess, *email, *password); err != nil {
			return err
		}
		return c.print(c.sess.User())

	case "logout":
		c.api.Logout(c.sess)
		return nil

	case "whoami":
		if !c.sess.LoggedIn() {
			return client.ErrNotLoggedIn
		}
		return c.print(c.sess.User())

	case "venues":
		venues, err := c.api.ListVenues(ctx)
		if err != nil {
			return err
		}
		return c.print(venues)

	case "blocked":
		id, err := c.venueArg(ctx, args)
		if err != nil {
			return err
		}
		dates, err := c.api.BlockedDates(ctx, id)
		if err != nil {
			return err
		}
		return c.print(dates)

	case "book":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		venueRef := fs.String("venue", "", "venue id, slug or name")
		date := fs.String("date", "", "event date, YYYY-MM-DD")
		name := fs.String("name", "", "customer name")
		email := fs.String("email", "", "customer email")
		phone := fs.String("phone", "", "customer phone")
		event := fs.String("event", "", "event type")
		amount := fs.Float64("amount", 0, "total amount")
		fs.Parse(args)
		id, err := c.api.ResolveVenueID(ctx, *venueRef)
		if err != nil {
			return err
		}
		b, err := c.api.CreateBooking(ctx, c.sess, client.BookingInput{
			VenueID:      id,
			CustomerName: *name,
			Email:        *email,
			Phone:        *phone,
			Date:         *date,
			EventType:    *event,
			TotalAmount:  *amount,
		})
		if err != nil {
			return err
		}
		return c.print(b)

	case "bookings":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mine := fs.Bool("mine", false, "only bookings made by the logged-in user")
		fs.Parse(args)
		if *mine {
			bookings, err := c.api.MyBookings(ctx, c.sess)
			if err != nil {
				return err
			}
			return c.print(bookings)
		}
		bookings, err := c.api.ListBookings(ctx, c.sess)
		if err != nil {
			return err
		}
		return c.print(bookings)

	case "venue-create":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		in := client.VenueInput{}
		fs.StringVar(&in.Name, "name", "", "venue name")
		fs.StringVar(&in.Description, "description", "", "description")
		fs.StringVar(&in.Location, "location", "", "location")
		fs.IntVar(&in.Capacity, "capacity", 0, "guest capacity")
		fs.Float64Var(&in.PricePerDay, "price", 0, "price per day")
		amenities := fs.String("amenities", "", "comma separated amenities")
		fs.StringVar(&in.Image, "image", "", "image URL")
		fs.Parse(args)
		in.Amenities = splitList(*amenities)
		v, err := c.api.CreateVenue(ctx, c.sess, in)
		if err != nil {
			return err
		}
		return c.print(v)

	case "venue-delete":
		id, err := c.venueArg(ctx, args)
		if err != nil {
			return err
		}
		return c.api.DeactivateVenue(ctx, c.sess, id)

	case "venue-block":
		id, err := c.venueArg(ctx, args)
		if err != nil {
			return err
		}
		v, err := c.api.SetBlockedDates(ctx, c.sess, id, args[1:])
		if err != nil {
			return err
		}
		return c.print(v.BlockedDates)

	case "venue-report":
		id, err := c.venueArg(ctx, args)
		if err != nil {
			return err
		}
		report, err := c.api.AvailabilityReport(ctx, c.sess, id)
		if err != nil {
			return err
		}
		return c.print(report)

	case "venue-bookings":
		id, err := c.venueArg(ctx, args)
		if err != nil {
			return err
		}
		bookings, err := c.api.VenueBookings(ctx, c.sess, id)
		if err != nil {
			return err
		}
		return c.print(bookings)

	case "analytics":
		return c.analytics(ctx, args)

	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	}

	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func (c *cli) analytics(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("analytics: report name required")
	}
	report := args[0]
	fs := flag.NewFlagSet("analytics "+report, flag.ExitOnError)
	period := fs.String("period", string(analytics.PeriodSixMonths), "6months or 1year")
	fs.Parse(args[1:])
	p := analytics.ParsePeriod(*period)

	var (
		out any
		err error
	)
	switch report {
	case "dashboard":
		out, err = c.api.Dashboard(ctx, c.sess)
	case "revenue":
		out, err = c.api.Revenue(ctx, c.sess, p)
	case "bookings":
		out, err = c.api.BookingStats(ctx, c.sess, p)
	case "venues":
		out, err = c.api.VenuePerformance(ctx, c.sess)
	case "customers":
		out, err = c.api.Customers(ctx, c.sess)
	default:
		return fmt.Errorf("analytics: unknown report %q", report)
	}
	if err != nil {
		return err
	}
	return c.print(out)
}

func (c *cli) venueArg(ctx context.Context, args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("venue argument required")
	}
	return c.api.ResolveVenueID(ctx, args[0])
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".venuebook-session.json"
	}
	return filepath.Join(home, ".venuebook", "session.json")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "venuectl:", err)
	os.Exit(1)
}
