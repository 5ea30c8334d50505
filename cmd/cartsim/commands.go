package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/cartsim/internal/checkout/app"
)

func (s *cliState) listCatalog(c *cli.Context) error {
	w := c.App.Writer
	if s.rt.catalogErr != nil {
		fmt.Fprintln(w, "Error: could not load products")
		return nil
	}
	renderCatalog(w, s.rt.catalog.List())
	return nil
}

func (s *cliState) showCart(c *cli.Context) error {
	renderCart(c.App.Writer, s.rt.ledger.Snapshot(), s.rt.ledger.Policy())
	return nil
}

func (s *cliState) addItem(c *cli.Context) error {
	id, err := productArg(c)
	if err != nil {
		return err
	}
	defer s.watch(c)()

	err = s.rt.ledger.AddItem(c.Context, id)
	switch {
	case errors.Is(err, cartapp.ErrInsufficientStock):
		fmt.Fprintln(c.App.Writer, "Out of stock: not enough stock available")
		return nil
	case errors.Is(err, cartapp.ErrProductNotFound):
		fmt.Fprintf(c.App.Writer, "Product %d is not in the catalog\n", id)
		return nil
	}
	return s.report(c, err)
}

func (s *cliState) removeItem(c *cli.Context) error {
	id, err := productArg(c)
	if err != nil {
		return err
	}
	defer s.watch(c)()
	return s.report(c, s.rt.ledger.RemoveItem(c.Context, id))
}

func (s *cliState) setQuantity(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: %s set <product-id> <quantity>", c.App.Name)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", c.Args().Get(0))
	}
	qty, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid quantity %q", c.Args().Get(1))
	}
	defer s.watch(c)()

	err = s.rt.ledger.SetQuantity(c.Context, id, qty)
	var qe *cartapp.QuantityError
	switch {
	case errors.As(err, &qe):
		fmt.Fprintf(c.App.Writer, "Invalid quantity: max stock %d\n", qe.Max)
		return s.report(c, withoutQuantityError(err))
	case errors.Is(err, cartapp.ErrProductNotFound):
		fmt.Fprintf(c.App.Writer, "Product %d is not in the catalog\n", id)
		return nil
	}
	return s.report(c, err)
}

func (s *cliState) clearCart(c *cli.Context) error {
	w := c.App.Writer
	if s.rt.ledger.Len() == 0 {
		fmt.Fprintln(w, "Cart is already empty")
		return nil
	}
	if !c.Bool("yes") {
		fmt.Fprint(w, "Empty the cart? [y/N]: ")
		answer, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			fmt.Fprintln(w, "Cart kept")
			return nil
		}
	}
	defer s.watch(c)()
	return s.report(c, s.rt.ledger.Clear(c.Context))
}

func (s *cliState) checkout(c *cli.Context) error {
	w := c.App.Writer
	r, err := s.rt.checkout.Checkout(c.Context, time.Now())
	if errors.Is(err, checkoutapp.ErrEmptyCart) {
		fmt.Fprintln(w, "Error: cart is empty")
		return nil
	}
	if errors.Is(err, checkoutapp.ErrDelivery) {
		return err
	}

	fmt.Fprint(w, r.Text)
	fmt.Fprintf(w, "Purchase complete: ticket saved to %s\n", s.rt.tickets.Path(r))
	return s.report(c, err)
}

// watch renders every cart change made while the returned func is pending.
func (s *cliState) watch(c *cli.Context) (unsubscribe func()) {
	return s.rt.ledger.Subscribe(func(snap cartapp.Snapshot) {
		renderCart(c.App.Writer, snap, s.rt.ledger.Policy())
	})
}

// report turns a persistence failure into a warning. The change already
// applies to this run.
func (s *cliState) report(c *cli.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, cartapp.ErrPersistence) {
		fmt.Fprintln(c.App.Writer, "Warning: cart changes could not be saved")
		return nil
	}
	return err
}

// withoutQuantityError keeps the persistence part of a joined error.
func withoutQuantityError(err error) error {
	if errors.Is(err, cartapp.ErrPersistence) {
		return cartapp.ErrPersistence
	}
	return nil
}

func productArg(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("usage: %s %s <product-id>", c.App.Name, c.Command.Name)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", c.Args().First())
	}
	return id, nil
}
