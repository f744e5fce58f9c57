package maquila_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Maquila-api/internal/application/maquila"
	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional (snapshot + rollback)
// ─────────────────────────────────────────────────────────────────────────────

type memData struct {
	users      map[string]entity.User
	companies  map[string]entity.Company
	clients    map[string]entity.Client
	orders     map[string]entity.Order
	toasting   map[string]entity.ToastingProcess // por order_id
	production map[string]entity.ProductionProcess
	invoices   map[string]entity.Invoice
	sequences  map[string]int
	activity   []entity.ActivityLog
}

func newMemData() *memData {
	return &memData{
		users:      map[string]entity.User{},
		companies:  map[string]entity.Company{},
		clients:    map[string]entity.Client{},
		orders:     map[string]entity.Order{},
		toasting:   map[string]entity.ToastingProcess{},
		production: map[string]entity.ProductionProcess{},
		invoices:   map[string]entity.Invoice{},
		sequences:  map[string]int{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.clients {
		c.clients[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.toasting {
		v.Samples = append([]entity.MonitoringSample(nil), v.Samples...)
		c.toasting[k] = v
	}
	for k, v := range d.production {
		c.production[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.sequences {
		c.sequences[k] = v
	}
	// la bitácora no participa de la transacción
	c.activity = d.activity
	return c
}

type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *memData

	failOrderCreate error
	failOrderUpdate error
	failAppend      error
}

func newMemStore() *memStore {
	return &memStore{data: newMemData()}
}

func (s *memStore) repos() maquila.Repos {
	return maquila.Repos{
		Users:      memUsers{s},
		Companies:  memCompanies{s},
		Clients:    memClients{s},
		Orders:     memOrders{s},
		Toasting:   memToasting{s},
		Production: memProduction{s},
		Invoices:   memInvoices{s},
		Sequences:  memSequences{s},
		Activity:   memActivity{s},
	}
}

// RunMaquila serializa transacciones y restaura el snapshot si fn falla.
func (s *memStore) RunMaquila(ctx context.Context, fn func(r maquila.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.data.clone()
	s.mu.Unlock()

	if err := fn(s.repos()); err != nil {
		s.mu.Lock()
		snap.activity = s.data.activity
		s.data = snap
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) with(fn func(d *memData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

func (s *memStore) order(id string) entity.Order {
	var o entity.Order
	s.with(func(d *memData) { o = d.orders[id] })
	return o
}

func (s *memStore) activityActions() []string {
	var out []string
	s.with(func(d *memData) {
		for _, a := range d.activity {
			out = append(out, a.Action)
		}
	})
	return out
}

// ── users ────────────────────────────────────────────────────────────────────

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.with(func(d *memData) { d.users[u.ID] = *u })
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (u *entity.User, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.users[id]; ok {
			u = &v
		}
	})
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (u *entity.User, err error) {
	r.s.with(func(d *memData) {
		for _, v := range d.users {
			if v.Email == email {
				v := v
				u = &v
			}
		}
	})
	return u, nil
}

func (r memUsers) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	r.s.with(func(d *memData) {
		for _, v := range d.users {
			if v.CompanyID == companyID {
				v := v
				out = append(out, &v)
			}
		}
	})
	return page(out, limit, offset), nil
}

// ── companies ────────────────────────────────────────────────────────────────

type memCompanies struct{ s *memStore }

func (r memCompanies) Create(_ context.Context, c *entity.Company) error {
	var err error
	r.s.with(func(d *memData) {
		for _, v := range d.companies {
			if v.NIT == c.NIT || v.Slug == c.Slug {
				err = domain.ErrDuplicate
				return
			}
		}
		d.companies[c.ID] = *c
	})
	return err
}

func (r memCompanies) GetByID(_ context.Context, id string) (c *entity.Company, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.companies[id]; ok {
			c = &v
		}
	})
	return c, nil
}

func (r memCompanies) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r memCompanies) GetByNIT(_ context.Context, nit string) (c *entity.Company, err error) {
	r.s.with(func(d *memData) {
		for _, v := range d.companies {
			if v.NIT == nit {
				v := v
				c = &v
			}
		}
	})
	return c, nil
}

func (r memCompanies) SlugExists(_ context.Context, slug string) (exists bool, err error) {
	r.s.with(func(d *memData) {
		for _, v := range d.companies {
			if v.Slug == slug {
				exists = true
			}
		}
	})
	return exists, nil
}

func (r memCompanies) UpdateStatus(_ context.Context, c *entity.Company) error {
	r.s.with(func(d *memData) { d.companies[c.ID] = *c })
	return nil
}

func (r memCompanies) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	r.s.with(func(d *memData) {
		for _, v := range d.companies {
			v := v
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// ── clients ──────────────────────────────────────────────────────────────────

type memClients struct{ s *memStore }

func (r memClients) Create(_ context.Context, c *entity.Client) error {
	var err error
	r.s.with(func(d *memData) {
		for _, v := range d.clients {
			if v.CompanyID == c.CompanyID && v.DocumentNumber == c.DocumentNumber {
				err = domain.ErrDuplicate
				return
			}
		}
		d.clients[c.ID] = *c
	})
	return err
}

func (r memClients) GetByID(_ context.Context, id string) (c *entity.Client, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.clients[id]; ok {
			c = &v
		}
	})
	return c, nil
}

func (r memClients) GetByDocument(_ context.Context, companyID, doc string) (c *entity.Client, err error) {
	r.s.with(func(d *memData) {
		for _, v := range d.clients {
			if v.CompanyID == companyID && v.DocumentNumber == doc {
				v := v
				c = &v
			}
		}
	})
	return c, nil
}

func (r memClients) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	r.s.with(func(d *memData) {
		for _, v := range d.clients {
			if v.CompanyID == companyID {
				v := v
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r memClients) Update(_ context.Context, c *entity.Client) error {
	r.s.with(func(d *memData) { d.clients[c.ID] = *c })
	return nil
}

func (r memClients) Delete(_ context.Context, companyID, id string) error {
	r.s.with(func(d *memData) {
		if v, ok := d.clients[id]; ok && v.CompanyID == companyID {
			delete(d.clients, id)
		}
	})
	return nil
}

// ── orders ───────────────────────────────────────────────────────────────────

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	if r.s.failOrderCreate != nil {
		return r.s.failOrderCreate
	}
	var err error
	r.s.with(func(d *memData) {
		for _, v := range d.orders {
			if v.Number == o.Number {
				err = domain.ErrDuplicate
				return
			}
		}
		d.orders[o.ID] = *o
	})
	return err
}

func (r memOrders) GetByID(_ context.Context, id string) (o *entity.Order, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.orders[id]; ok {
			o = &v
		}
	})
	return o, nil
}

func (r memOrders) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrders) Update(_ context.Context, o *entity.Order, prev entity.OrderState) error {
	if r.s.failOrderUpdate != nil {
		return r.s.failOrderUpdate
	}
	var err error
	r.s.with(func(d *memData) {
		stored, ok := d.orders[o.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		if stored.State != prev {
			err = domain.ErrConflict
			return
		}
		o.Number = stored.Number
		d.orders[o.ID] = *o
	})
	return err
}

func (r memOrders) List(_ context.Context, companyID string, f entity.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	r.s.with(func(d *memData) {
		for _, v := range d.orders {
			if v.CompanyID != companyID {
				continue
			}
			if f.State != "" && v.State != f.State {
				continue
			}
			if f.ClientID != "" && v.ClientID != f.ClientID {
				continue
			}
			v := v
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, f.Limit, f.Offset), nil
}

func (r memOrders) Delete(_ context.Context, companyID, id string) error {
	r.s.with(func(d *memData) {
		if v, ok := d.orders[id]; ok && v.CompanyID == companyID {
			delete(d.orders, id)
			delete(d.toasting, id)
			delete(d.production, id)
		}
	})
	return nil
}

// ── toasting / production ────────────────────────────────────────────────────

type memToasting struct{ s *memStore }

func (r memToasting) Create(_ context.Context, p *entity.ToastingProcess) error {
	var err error
	r.s.with(func(d *memData) {
		if _, ok := d.toasting[p.OrderID]; ok {
			err = domain.ErrDuplicate
			return
		}
		cp := *p
		cp.Samples = append([]entity.MonitoringSample(nil), p.Samples...)
		d.toasting[p.OrderID] = cp
	})
	return err
}

func (r memToasting) GetByOrder(_ context.Context, companyID, orderID string) (p *entity.ToastingProcess, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.toasting[orderID]; ok && v.CompanyID == companyID {
			v.Samples = append([]entity.MonitoringSample(nil), v.Samples...)
			p = &v
		}
	})
	return p, nil
}

func (r memToasting) Update(_ context.Context, p *entity.ToastingProcess) error {
	r.s.with(func(d *memData) {
		cp := *p
		cp.Samples = append([]entity.MonitoringSample(nil), p.Samples...)
		d.toasting[p.OrderID] = cp
	})
	return nil
}

type memProduction struct{ s *memStore }

func (r memProduction) Create(_ context.Context, p *entity.ProductionProcess) error {
	var err error
	r.s.with(func(d *memData) {
		if _, ok := d.production[p.OrderID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.production[p.OrderID] = *p
	})
	return err
}

func (r memProduction) GetByOrder(_ context.Context, companyID, orderID string) (p *entity.ProductionProcess, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.production[orderID]; ok && v.CompanyID == companyID {
			p = &v
		}
	})
	return p, nil
}

// ── invoices ─────────────────────────────────────────────────────────────────

type memInvoices struct{ s *memStore }

func (r memInvoices) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.with(func(d *memData) { d.invoices[inv.ID] = *inv })
	return nil
}

func (r memInvoices) GetByID(_ context.Context, id string) (inv *entity.Invoice, err error) {
	r.s.with(func(d *memData) {
		if v, ok := d.invoices[id]; ok {
			inv = &v
		}
	})
	return inv, nil
}

func (r memInvoices) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r memInvoices) GetByOrder(_ context.Context, companyID, orderID string) (inv *entity.Invoice, err error) {
	r.s.with(func(d *memData) {
		for _, v := range d.invoices {
			if v.OrderID == orderID && v.CompanyID == companyID {
				v := v
				inv = &v
			}
		}
	})
	return inv, nil
}

func (r memInvoices) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.with(func(d *memData) {
		stored := d.invoices[inv.ID]
		inv.Number = stored.Number
		d.invoices[inv.ID] = *inv
	})
	return nil
}

// ── sequences / activity ─────────────────────────────────────────────────────

type memSequences struct{ s *memStore }

func (r memSequences) Next(_ context.Context, companyID, kind string, day time.Time) (n int, err error) {
	key := companyID + "|" + kind + "|" + day.Format("20060102")
	r.s.with(func(d *memData) {
		d.sequences[key]++
		n = d.sequences[key]
	})
	return n, nil
}

type memActivity struct{ s *memStore }

func (r memActivity) Append(_ context.Context, l *entity.ActivityLog) error {
	if r.s.failAppend != nil {
		return r.s.failAppend
	}
	r.s.with(func(d *memData) { d.activity = append(d.activity, *l) })
	return nil
}

func (r memActivity) List(_ context.Context, f entity.ActivityFilter) ([]*entity.ActivityLog, error) {
	var out []*entity.ActivityLog
	r.s.with(func(d *memData) {
		for _, v := range d.activity {
			if f.CompanyID != "" && v.CompanyID != f.CompanyID {
				continue
			}
			if f.OrderID != "" && v.OrderID != f.OrderID {
				continue
			}
			if f.Action != "" && v.Action != f.Action {
				continue
			}
			v := v
			out = append(out, &v)
		}
	})
	return page(out, f.Limit, f.Offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── notificaciones ───────────────────────────────────────────────────────────

type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	sent []ports.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n ports.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, n := range f.sent {
		out = append(out, n.Event)
	}
	return out
}

var errBoom = errors.New("boom")
