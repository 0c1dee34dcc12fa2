package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/utils"

	"golang.org/x/crypto/bcrypt"
)

// MemoryStore serves the catalog and calculation records when no database is
// configured. It is seeded with the standard catalog.
type MemoryStore struct {
	mu sync.RWMutex

	containerTypes map[uint]ds.ContainerType
	routes         map[uint]ds.ShippingRoute
	calculations   map[uint]ds.ContainerCalculation
	components     map[uint][]ds.CostComponent // calculation id -> rows
	plans          map[uint]ds.LoadingPlan     // calculation id -> plan
	users          map[string]ds.User          // login -> user
	sessions       map[int]string              // user id -> token

	nextContainerTypeID uint
	nextRouteID         uint
	nextCalculationID   uint
	nextComponentID     uint
	nextPlanID          uint
	nextUserID          int

	opts Options
	now  func() time.Time
}

func NewMemoryStore(opts Options) *MemoryStore {
	if opts.JWTTTL <= 0 {
		opts.JWTTTL = 24 * time.Hour
	}
	s := &MemoryStore{
		containerTypes: map[uint]ds.ContainerType{},
		routes:         map[uint]ds.ShippingRoute{},
		calculations:   map[uint]ds.ContainerCalculation{},
		components:     map[uint][]ds.CostComponent{},
		plans:          map[uint]ds.LoadingPlan{},
		users:          map[string]ds.User{},
		sessions:       map[int]string{},
		opts:           opts,
		now:            time.Now,
	}
	for _, ct := range StandardContainerTypes() {
		row := ct
		_ = s.CreateContainerType(context.Background(), &row)
	}
	for _, route := range StandardShippingRoutes() {
		row := route
		_ = s.CreateShippingRoute(context.Background(), &row)
	}
	return s
}

func (s *MemoryStore) JWTKey() string {
	return s.opts.JWTKey
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) GetContainerTypes(_ context.Context) ([]ds.ContainerType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]ds.ContainerType, 0, len(s.containerTypes))
	for _, row := range s.containerTypes {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RentalCost != rows[j].RentalCost {
			return rows[i].RentalCost < rows[j].RentalCost
		}
		return rows[i].ContainerTypeID < rows[j].ContainerTypeID
	})
	return rows, nil
}

func (s *MemoryStore) GetContainerType(_ context.Context, id uint) (*ds.ContainerType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.containerTypes[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetShippingRoutes(_ context.Context) ([]ds.ShippingRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]ds.ShippingRoute, 0, len(s.routes))
	for _, row := range s.routes {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TransitDays != rows[j].TransitDays {
			return rows[i].TransitDays < rows[j].TransitDays
		}
		return rows[i].ShippingRouteID < rows[j].ShippingRouteID
	})
	return rows, nil
}

func (s *MemoryStore) GetShippingRoute(_ context.Context, id uint) (*ds.ShippingRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.routes[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) CreateContainerType(_ context.Context, row *ds.ContainerType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.containerTypes {
		if existing.Code == row.Code {
			return &apperr.ValidationError{Field: "code", Reason: "already exists"}
		}
	}
	s.nextContainerTypeID++
	row.ContainerTypeID = s.nextContainerTypeID
	row.CreatedAt = s.now()
	s.containerTypes[row.ContainerTypeID] = *row
	return nil
}

func (s *MemoryStore) CreateShippingRoute(_ context.Context, row *ds.ShippingRoute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRouteID++
	row.ShippingRouteID = s.nextRouteID
	row.CreatedAt = s.now()
	s.routes[row.ShippingRouteID] = *row
	return nil
}

// SaveCalculation stores the record with its children under one lock, so
// readers never observe a partial write.
func (s *MemoryStore) SaveCalculation(_ context.Context, calc *ds.ContainerCalculation) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containerTypes[calc.ContainerTypeID]; !ok {
		return 0, &apperr.ValidationError{Field: "container_type_id", Reason: "references a missing row"}
	}
	if calc.ShippingRouteID != nil {
		if _, ok := s.routes[*calc.ShippingRouteID]; !ok {
			return 0, &apperr.ValidationError{Field: "shipping_route_id", Reason: "references a missing row"}
		}
	}

	s.nextCalculationID++
	calc.CalculationID = s.nextCalculationID
	calc.CreatedAt = s.now()

	s.saveComponentsLocked(calc.CalculationID, calc.CostComponents)
	if calc.LoadingPlan != nil {
		s.savePlanLocked(calc.CalculationID, calc.LoadingPlan)
	}

	row := *calc
	row.ContainerType = nil
	row.ShippingRoute = nil
	row.CostComponents = nil
	row.LoadingPlan = nil
	s.calculations[row.CalculationID] = row
	return calc.CalculationID, nil
}

func (s *MemoryStore) GetCalculationHistory(_ context.Context, limit int) ([]ds.ContainerCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]ds.ContainerCalculation, 0, len(s.calculations))
	for _, row := range s.calculations {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].CalculationID > rows[j].CalculationID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *MemoryStore) GetCalculation(_ context.Context, id uint) (*ds.ContainerCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.calculations[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) DeleteCalculation(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.calculations[id]; !ok {
		return &apperr.NotFoundError{Entity: "calculation", ID: id}
	}
	delete(s.calculations, id)
	delete(s.components, id)
	delete(s.plans, id)
	return nil
}

func (s *MemoryStore) SaveCostComponents(_ context.Context, calculationID uint, components []ds.CostComponent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.calculations[calculationID]; !ok {
		return &apperr.ValidationError{Field: "calculation_id", Reason: "references a missing row"}
	}
	s.saveComponentsLocked(calculationID, components)
	return nil
}

func (s *MemoryStore) GetCostComponents(_ context.Context, calculationID uint) ([]ds.CostComponent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.components[calculationID]
	out := make([]ds.CostComponent, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *MemoryStore) SaveLoadingPlan(_ context.Context, plan *ds.LoadingPlan) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.calculations[plan.CalculationID]; !ok {
		return 0, &apperr.ValidationError{Field: "calculation_id", Reason: "references a missing row"}
	}
	if _, ok := s.plans[plan.CalculationID]; ok {
		return 0, &apperr.ValidationError{Field: "calculation_id", Reason: "already has a loading plan"}
	}
	s.savePlanLocked(plan.CalculationID, plan)
	return plan.LoadingPlanID, nil
}

func (s *MemoryStore) GetLoadingPlan(_ context.Context, calculationID uint) (*ds.LoadingPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[calculationID]
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

func (s *MemoryStore) saveComponentsLocked(calculationID uint, components []ds.CostComponent) {
	for i := range components {
		s.nextComponentID++
		components[i].CostComponentID = s.nextComponentID
		components[i].CalculationID = calculationID
		components[i].CreatedAt = s.now()
		s.components[calculationID] = append(s.components[calculationID], components[i])
	}
}

func (s *MemoryStore) savePlanLocked(calculationID uint, plan *ds.LoadingPlan) {
	s.nextPlanID++
	plan.LoadingPlanID = s.nextPlanID
	plan.CalculationID = calculationID
	plan.CreatedAt = s.now()
	s.plans[calculationID] = *plan
}

func (s *MemoryStore) RegisterUser(_ context.Context, user ds.User) (ds.User, error) {
	if user.Login == "" {
		return ds.User{}, &apperr.ValidationError{Field: "login", Reason: "is required"}
	}
	if user.Password == "" {
		return ds.User{}, &apperr.ValidationError{Field: "password", Reason: "is required"}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return ds.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Login]; ok {
		return ds.User{}, &apperr.ValidationError{Field: "login", Reason: "already exists"}
	}
	if user.Role == "" {
		user.Role = ds.RoleViewer
	}
	s.nextUserID++
	user.UserID = s.nextUserID
	user.Password = string(hashed)
	s.users[user.Login] = user

	user.Password = ""
	return user, nil
}

func (s *MemoryStore) LoginUser(_ context.Context, login, password string) (string, error) {
	s.mu.RLock()
	user, ok := s.users[login]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := utils.GenerateJWT([]byte(s.opts.JWTKey), s.opts.JWTTTL, user.UserID, user.Role)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[user.UserID] = token
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryStore) LogoutUser(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemoryStore) SessionActive(_ context.Context, userID int, token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID] == token
}
