package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bookshelf.dev/storefront/internal/storefront"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/checkout"
	"bookshelf.dev/storefront/pkg/models"
)

type shopFunc func() *storefront.Storefront

func newHomeCmd(shop shopFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show featured books and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shop().Home(cmd.Context())
		},
	}
}

func newCategoriesCmd(shop shopFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List book categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shop().Categories(cmd.Context())
		},
	}
}

func newBooksCmd(shop shopFunc) *cobra.Command {
	var (
		q        catalog.Query
		sort     string
		priceMax string
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Sort = catalog.SortKey(sort)
			if priceMax != "" {
				limit, err := decimal.NewFromString(priceMax)
				if err != nil {
					return fmt.Errorf("invalid --price-max %q: %w", priceMax, err)
				}
				q.PriceMax = &limit
			}
			return shop().Listing(cmd.Context(), q)
		},
	}

	cmd.Flags().StringVar(&q.Category, "category", "", "only books in this category")
	cmd.Flags().StringVar(&priceMax, "price-max", "", "only books costing at most this much")
	cmd.Flags().StringVar(&q.Search, "search", "", "match title or author")
	cmd.Flags().StringVar(&sort, "sort", "", "title, title-desc, price-asc or price-desc")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	return cmd
}

func newBookCmd(shop shopFunc) *cobra.Command {
	var insights bool

	cmd := &cobra.Command{
		Use:   "book <id>",
		Short: "Show one book and related titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shop().Detail(cmd.Context(), args[0], insights)
		},
	}

	cmd.Flags().BoolVar(&insights, "insights", false, "include reader's notes")
	return cmd
}

func newCartCmd(shop shopFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shop().Cart(cmd.Context())
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a book to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shop().AddToCart(cmd.Context(), args[0], quantity)
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of copies")

	update := &cobra.Command{
		Use:   "update <id> <quantity>",
		Short: "Set the quantity of a line (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			return shop().SetQuantity(cmd.Context(), args[0], n)
		},
	}

	cmd.AddCommand(
		add,
		update,
		&cobra.Command{
			Use:   "inc <id>",
			Short: "Add one copy",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return shop().Increase(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "dec <id>",
			Short: "Remove one copy",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return shop().Decrease(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return shop().Remove(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return shop().ClearCart(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "promo <code>",
			Short: "Apply a promo code",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				code := ""
				if len(args) == 1 {
					code = args[0]
				}
				return shop().ApplyPromo(cmd.Context(), code)
			},
		},
		&cobra.Command{
			Use:   "unpromo",
			Short: "Remove the active promo code",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return shop().RemovePromo(cmd.Context())
			},
		},
	)
	return cmd
}

func newCheckoutCmd(shop shopFunc) *cobra.Command {
	var (
		form  checkout.Form
		place bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Review the order and, with --place, submit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !place {
				return shop().Checkout(cmd.Context(), nil)
			}

			saved, err := shop().SavedShippingInfo(cmd.Context())
			if err != nil {
				return err
			}
			if saved != nil {
				prefill(&form, saved)
			}
			return shop().Checkout(cmd.Context(), &form)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&place, "place", false, "submit the order")
	f.StringVar(&form.FirstName, "first-name", "", "")
	f.StringVar(&form.LastName, "last-name", "", "")
	f.StringVar(&form.Email, "email", "", "")
	f.StringVar(&form.Phone, "phone", "", "")
	f.StringVar(&form.Address, "address", "", "")
	f.StringVar(&form.City, "city", "", "")
	f.StringVar(&form.State, "state", "", "")
	f.StringVar(&form.ZipCode, "zip", "", "")
	f.StringVar(&form.PaymentMethod, "payment", models.PaymentCreditCard, "credit_card or paypal")
	f.StringVar(&form.CardName, "card-name", "", "")
	f.StringVar(&form.CardNumber, "card-number", "", "")
	f.StringVar(&form.Expiration, "expiration", "", "MM/YY")
	f.StringVar(&form.CVV, "cvv", "", "")
	f.BoolVar(&form.SaveInfo, "save-info", false, "remember the shipping details for next time")
	return cmd
}

// prefill copies saved shipping details into fields left empty on the command line.
func prefill(form, saved *checkout.Form) {
	for _, pair := range [][2]*string{
		{&form.FirstName, &saved.FirstName},
		{&form.LastName, &saved.LastName},
		{&form.Email, &saved.Email},
		{&form.Phone, &saved.Phone},
		{&form.Address, &saved.Address},
		{&form.City, &saved.City},
		{&form.State, &saved.State},
		{&form.ZipCode, &saved.ZipCode},
	} {
		if *pair[0] == "" {
			*pair[0] = *pair[1]
		}
	}
}
