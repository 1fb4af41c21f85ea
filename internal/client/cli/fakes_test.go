package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// ---- input stubs ----

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP, origGC := getSimpleText, getPassword, getConfirmation
	next := func() string {
		if len(answers) == 0 {
			t.Errorf("unexpected prompt")
			return ""
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getConfirmation = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) {
		a := strings.ToLower(next())
		return a == "y" || a == "yes", nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getConfirmation = origST, origGP, origGC
	})
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func captureErrors(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := errorOut
	errorOut = &buf
	t.Cleanup(func() { errorOut = orig })
	return &buf
}

// ---- fake auth ----

type fakeAuth struct {
	store *session.MemoryStore

	regIn  services.RegisterInput
	regErr error

	loginEmail string
	loginPass  []byte
	loginUser  *models.User
	loginErr   error
	logins     int

	logoutErr    error
	logoutCalled bool

	profile    *models.User
	profileErr error
	claims     *session.Claims

	pingErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{store: session.NewMemoryStore()}
}

func (f *fakeAuth) signIn(u *models.User) {
	_ = f.store.SetCredentials(context.Background(), session.Credentials{Access: "acc", Refresh: "ref"})
	_ = f.store.SetUser(context.Background(), u)
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.User, error) {
	f.logins++
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.signIn(f.loginUser)
	return f.loginUser, nil
}

func (f *fakeAuth) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.regIn = in
	f.regIn.Password = append([]byte(nil), in.Password...)
	if f.regErr != nil {
		return nil, f.regErr
	}
	u := &models.User{ID: 1, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
	f.signIn(u)
	return u, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	return f.store.Clear(ctx)
}

func (f *fakeAuth) Profile(context.Context) (*models.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuth) IsAuthenticated(ctx context.Context) (bool, error) {
	c, err := f.store.Credentials(ctx)
	return c.Access != "", err
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	return f.store.User(ctx)
}

func (f *fakeAuth) Claims(context.Context) (*session.Claims, error) { return f.claims, nil }
func (f *fakeAuth) Ping(context.Context) error                     { return f.pingErr }

// ---- fake catalog / cart / orders ----

type fakeCatalog struct {
	lastQuery services.ProductQuery
	page      *models.ProductPage
	product   *models.Product
	cats      []models.Category
	err       error
}

func (f *fakeCatalog) ListProducts(_ context.Context, q services.ProductQuery) (*models.ProductPage, error) {
	f.lastQuery = q
	return f.page, f.err
}
func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	return f.product, f.err
}
func (f *fakeCatalog) ListCategories(context.Context) ([]models.Category, error) {
	return f.cats, f.err
}

type fakeCart struct {
	cart    *models.Cart
	err     error
	added   [2]int64
	updated [2]int64
	removed int64
}

func (f *fakeCart) Current(context.Context) (*models.Cart, error) { return f.cart, f.err }
func (f *fakeCart) AddItem(_ context.Context, productID int64, qty int) (*models.CartItem, error) {
	f.added = [2]int64{productID, int64(qty)}
	if f.err != nil {
		return nil, f.err
	}
	return &models.CartItem{ID: 10, Quantity: qty, Product: models.Product{ID: productID, Name: "Red mug"}}, nil
}
func (f *fakeCart) UpdateItem(_ context.Context, itemID int64, qty int) (*models.CartItem, error) {
	f.updated = [2]int64{itemID, int64(qty)}
	if f.err != nil {
		return nil, f.err
	}
	return &models.CartItem{ID: itemID, Quantity: qty}, nil
}
func (f *fakeCart) RemoveItem(_ context.Context, itemID int64) error {
	f.removed = itemID
	return f.err
}

type fakeOrders struct {
	orders    []models.Order
	order     *models.Order
	checkout  *services.CheckoutInput
	cancelled int64
	err       error
}

func (f *fakeOrders) List(context.Context) ([]models.Order, error) { return f.orders, f.err }
func (f *fakeOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	return f.order, f.err
}
func (f *fakeOrders) Checkout(_ context.Context, in services.CheckoutInput) (*models.Order, error) {
	f.checkout = &in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: 77, Status: models.OrderStatusPending, TotalPrice: "19.98"}, nil
}
func (f *fakeOrders) Cancel(_ context.Context, id int64) (*models.Order, error) {
	f.cancelled = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: id, Status: models.OrderStatusCancelled}, nil
}

type testApp struct {
	*App
	auth    *fakeAuth
	catalog *fakeCatalog
	cart    *fakeCart
	orders  *fakeOrders
	out     *bytes.Buffer
}

func newTestApp() *testApp {
	ta := &testApp{
		auth:    newFakeAuth(),
		catalog: &fakeCatalog{},
		cart:    &fakeCart{},
		orders:  &fakeOrders{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		log:            logging.NewNop(),
		authService:    ta.auth,
		catalogService: ta.catalog,
		cartService:    ta.cart,
		orderService:   ta.orders,
		reader:         bufio.NewReader(strings.NewReader("")),
		out:            ta.out,
	}
	return ta
}
