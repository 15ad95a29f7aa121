package poller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"marketplace-dispatch/internal/apperr"
)

// ErrQuit is returned by RunCommands when the operator asks to stop.
var ErrQuit = errors.New("quit")

type commander interface {
	Current() []Item
	Accept(ctx context.Context, orderID int64) error
	Reject(ctx context.Context, orderID int64) error
}

// RunCommands reads operator commands line by line from r until ctx is done, r
// is exhausted or "quit" is entered:
//
//	list | ls
//	accept <orderId> | a <orderId>
//	reject <orderId> | r <orderId>
//	quit | q
func RunCommands(ctx context.Context, r io.Reader, w io.Writer, p commander) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := execute(ctx, w, p, line); err != nil {
				return err
			}
		}
	}
}

func execute(ctx context.Context, w io.Writer, p commander, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "quit", "q", "exit":
		return ErrQuit
	case "list", "ls":
		items := p.Current()
		if len(items) == 0 {
			fmt.Fprintln(w, "no pending deliveries")
		}
		for _, it := range items {
			fmt.Fprintf(w, "#%d  %s -> %s  %.2f km  earn %.2f\n",
				it.OrderID, it.Data.PickupAddress, it.Data.DeliveryAddress,
				it.Data.EstimatedDistance, it.Data.EstimatedEarnings)
		}
	case "accept", "a", "reject", "r":
		if len(fields) != 2 {
			fmt.Fprintf(w, "usage: %s <orderId>\n", cmd)
			return nil
		}
		orderID, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "#"), 10, 64)
		if err != nil || orderID <= 0 {
			fmt.Fprintf(w, "bad order id %q\n", fields[1])
			return nil
		}
		if cmd == "accept" || cmd == "a" {
			err = p.Accept(ctx, orderID)
		} else {
			err = p.Reject(ctx, orderID)
		}
		fmt.Fprintln(w, outcome(cmd, orderID, err))
	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}
	return nil
}

func outcome(cmd string, orderID int64, err error) string {
	verb := "accepted"
	if cmd == "reject" || cmd == "r" {
		verb = "rejected"
	}
	switch {
	case err == nil:
		return fmt.Sprintf("order #%d %s", orderID, verb)
	case errors.Is(err, apperr.ErrConflict):
		return fmt.Sprintf("order #%d was already taken by another partner", orderID)
	case errors.Is(err, apperr.ErrForbidden):
		return "partner is not approved for deliveries"
	case errors.Is(err, apperr.ErrNotFound):
		return fmt.Sprintf("order #%d has no delivery", orderID)
	default:
		return fmt.Sprintf("order #%d: %v", orderID, err)
	}
}
