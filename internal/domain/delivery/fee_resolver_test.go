package delivery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCityRepo struct {
	mock.Mock
}

func (m *mockCityRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*City, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*City), args.Error(1)
}

func (m *mockCityRepo) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*City, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*City), args.Error(1)
}

func (m *mockCityRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*City, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*City), args.Error(1)
}

func (m *mockCityRepo) Save(ctx context.Context, city *City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *mockCityRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *mockCityRepo) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockCityRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type mockNeighborhoodRepo struct {
	mock.Mock
}

func (m *mockNeighborhoodRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Neighborhood, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Neighborhood), args.Error(1)
}

func (m *mockNeighborhoodRepo) FindByNameInCity(ctx context.Context, tenantID, cityID uuid.UUID, name string) (*Neighborhood, error) {
	args := m.Called(ctx, tenantID, cityID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Neighborhood), args.Error(1)
}

func (m *mockNeighborhoodRepo) FindByCity(ctx context.Context, tenantID, cityID uuid.UUID, filter shared.Filter) ([]*Neighborhood, error) {
	args := m.Called(ctx, tenantID, cityID, filter)
	return args.Get(0).([]*Neighborhood), args.Error(1)
}

func (m *mockNeighborhoodRepo) FindByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*Neighborhood, error) {
	args := m.Called(ctx, tenantID, groupID)
	return args.Get(0).([]*Neighborhood), args.Error(1)
}

func (m *mockNeighborhoodRepo) Save(ctx context.Context, neighborhood *Neighborhood) error {
	args := m.Called(ctx, neighborhood)
	return args.Error(0)
}

func (m *mockNeighborhoodRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *mockNeighborhoodRepo) CountByCity(ctx context.Context, tenantID, cityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, cityID)
	return args.Get(0).(int64), args.Error(1)
}

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*NeighborhoodGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NeighborhoodGroup), args.Error(1)
}

func (m *mockGroupRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*NeighborhoodGroup, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*NeighborhoodGroup), args.Error(1)
}

func (m *mockGroupRepo) Save(ctx context.Context, group *NeighborhoodGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func newResolverFixture(t *testing.T) (*FeeResolver, *mockCityRepo, *mockNeighborhoodRepo, *mockGroupRepo) {
	t.Helper()
	cities := new(mockCityRepo)
	hoods := new(mockNeighborhoodRepo)
	groups := new(mockGroupRepo)
	return NewFeeResolver(cities, hoods, groups), cities, hoods, groups
}

func TestFeeResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	defaults := TenantDefaults{Fee: decimal.NewFromFloat(8.00), EstimatedTime: "40-60"}

	newCity := func() *City {
		city, err := NewCity(tenantID, "Campinas", "SP", decimal.NewFromFloat(10.00), "30-45")
		require.NoError(t, err)
		return city
	}

	t.Run("personalized fee wins over group and city", func(t *testing.T) {
		resolver, cities, hoods, _ := newResolverFixture(t)
		city := newCity()

		hood, err := NewNeighborhood(tenantID, city.GetID(), "Cambuí")
		require.NoError(t, err)
		require.NoError(t, hood.AssignGroup(uuid.New()))
		require.NoError(t, hood.SetPersonalizedFee(decimal.NewFromFloat(5.50), "20-30"))

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)
		hoods.On("FindByNameInCity", ctx, tenantID, city.GetID(), "Cambuí").Return(hood, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas", NeighborhoodName: "Cambuí"}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(5.50)))
		assert.Equal(t, "20-30", quote.EstimatedTime)
		assert.Equal(t, FeeSourceNeighborhood, quote.Source)
	})

	t.Run("group fee applies when neighborhood has no override", func(t *testing.T) {
		resolver, cities, hoods, groups := newResolverFixture(t)
		city := newCity()

		group, err := NewNeighborhoodGroup(tenantID, "Zona Sul", decimal.NewFromFloat(7.00), "25-40")
		require.NoError(t, err)

		hood, err := NewNeighborhood(tenantID, city.GetID(), "Vila Industrial")
		require.NoError(t, err)
		require.NoError(t, hood.AssignGroup(group.GetID()))

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)
		hoods.On("FindByNameInCity", ctx, tenantID, city.GetID(), "Vila Industrial").Return(hood, nil)
		groups.On("FindByID", ctx, tenantID, group.GetID()).Return(group, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas", NeighborhoodName: "Vila Industrial"}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(7.00)))
		assert.Equal(t, "25-40", quote.EstimatedTime)
		assert.Equal(t, FeeSourceGroup, quote.Source)
	})

	t.Run("inactive group falls back to city fee", func(t *testing.T) {
		resolver, cities, hoods, groups := newResolverFixture(t)
		city := newCity()

		group, err := NewNeighborhoodGroup(tenantID, "Zona Norte", decimal.NewFromFloat(7.00), "25-40")
		require.NoError(t, err)
		group.Toggle()

		hood, err := NewNeighborhood(tenantID, city.GetID(), "Barão Geraldo")
		require.NoError(t, err)
		require.NoError(t, hood.AssignGroup(group.GetID()))

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)
		hoods.On("FindByNameInCity", ctx, tenantID, city.GetID(), "Barão Geraldo").Return(hood, nil)
		groups.On("FindByID", ctx, tenantID, group.GetID()).Return(group, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas", NeighborhoodName: "Barão Geraldo"}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(10.00)))
		assert.Equal(t, FeeSourceCity, quote.Source)
	})

	t.Run("city fee applies when neighborhood is unknown", func(t *testing.T) {
		resolver, cities, hoods, _ := newResolverFixture(t)
		city := newCity()

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)
		hoods.On("FindByNameInCity", ctx, tenantID, city.GetID(), "Inexistente").Return(nil, shared.ErrNotFound)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas", NeighborhoodName: "Inexistente"}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(10.00)))
		assert.Equal(t, "30-45", quote.EstimatedTime)
		assert.Equal(t, FeeSourceCity, quote.Source)
	})

	t.Run("city fee applies when no neighborhood given", func(t *testing.T) {
		resolver, cities, _, _ := newResolverFixture(t)
		city := newCity()

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas"}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(10.00)))
		assert.Equal(t, FeeSourceCity, quote.Source)
	})

	t.Run("tenant default when city unknown", func(t *testing.T) {
		resolver, cities, _, _ := newResolverFixture(t)

		cities.On("FindByName", ctx, tenantID, "Atlantis").Return(nil, shared.ErrNotFound)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Atlantis", NeighborhoodName: "Centro"}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(8.00)))
		assert.Equal(t, "40-60", quote.EstimatedTime)
		assert.Equal(t, FeeSourceDefault, quote.Source)
	})

	t.Run("tenant default when city inactive", func(t *testing.T) {
		resolver, cities, _, _ := newResolverFixture(t)
		city := newCity()
		city.Toggle()

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas", NeighborhoodName: "Centro"}, defaults)
		require.NoError(t, err)
		assert.Equal(t, FeeSourceDefault, quote.Source)
	})

	t.Run("tenant default when no city given", func(t *testing.T) {
		resolver, _, _, _ := newResolverFixture(t)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{}, defaults)
		require.NoError(t, err)
		assert.Equal(t, FeeSourceDefault, quote.Source)
	})

	t.Run("inactive neighborhood falls back to city fee", func(t *testing.T) {
		resolver, cities, hoods, _ := newResolverFixture(t)
		city := newCity()

		hood, err := NewNeighborhood(tenantID, city.GetID(), "Taquaral")
		require.NoError(t, err)
		require.NoError(t, hood.SetPersonalizedFee(decimal.NewFromFloat(3.00), ""))
		hood.Toggle()

		cities.On("FindByName", ctx, tenantID, "Campinas").Return(city, nil)
		hoods.On("FindByNameInCity", ctx, tenantID, city.GetID(), "Taquaral").Return(hood, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityName: "Campinas", NeighborhoodName: "Taquaral"}, defaults)
		require.NoError(t, err)
		assert.Equal(t, FeeSourceCity, quote.Source)
	})

	t.Run("resolves city by id and echoes it in the quote", func(t *testing.T) {
		resolver, cities, _, _ := newResolverFixture(t)
		city := newCity()

		cities.On("FindByID", ctx, tenantID, city.GetID()).Return(city, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityID: city.GetID()}, defaults)
		require.NoError(t, err)
		assert.Equal(t, FeeSourceCity, quote.Source)
		require.NotNil(t, quote.City)
		assert.Equal(t, city.GetID(), quote.City.GetID())
		assert.Equal(t, "Campinas", quote.City.Name)
		assert.Equal(t, "SP", quote.City.State)
		cities.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolves neighborhood by id before name", func(t *testing.T) {
		resolver, cities, hoods, _ := newResolverFixture(t)
		city := newCity()

		hood, err := NewNeighborhood(tenantID, city.GetID(), "Cambuí")
		require.NoError(t, err)
		require.NoError(t, hood.SetPersonalizedFee(decimal.NewFromFloat(4.00), "15-25"))

		cities.On("FindByID", ctx, tenantID, city.GetID()).Return(city, nil)
		hoods.On("FindByID", ctx, tenantID, hood.GetID()).Return(hood, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{
			CityID:           city.GetID(),
			NeighborhoodID:   hood.GetID(),
			NeighborhoodName: "ignored when the id is present",
		}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(4.00)))
		assert.Equal(t, FeeSourceNeighborhood, quote.Source)
		hoods.AssertNotCalled(t, "FindByNameInCity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("neighborhood from another city falls back to city fee", func(t *testing.T) {
		resolver, cities, hoods, _ := newResolverFixture(t)
		city := newCity()

		stray, err := NewNeighborhood(tenantID, uuid.New(), "Centro")
		require.NoError(t, err)
		require.NoError(t, stray.SetPersonalizedFee(decimal.NewFromFloat(2.00), ""))

		cities.On("FindByID", ctx, tenantID, city.GetID()).Return(city, nil)
		hoods.On("FindByID", ctx, tenantID, stray.GetID()).Return(stray, nil)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{
			CityID:         city.GetID(),
			NeighborhoodID: stray.GetID(),
		}, defaults)
		require.NoError(t, err)
		assert.True(t, quote.Fee.Equal(decimal.NewFromFloat(10.00)))
		assert.Equal(t, FeeSourceCity, quote.Source)
	})

	t.Run("unknown city id falls back to tenant default", func(t *testing.T) {
		resolver, cities, _, _ := newResolverFixture(t)
		missing := uuid.New()

		cities.On("FindByID", ctx, tenantID, missing).Return(nil, shared.ErrNotFound)

		quote, err := resolver.Resolve(ctx, tenantID, FeeQuery{CityID: missing}, defaults)
		require.NoError(t, err)
		assert.Equal(t, FeeSourceDefault, quote.Source)
		assert.Nil(t, quote.City)
	})
}

func TestNeighborhood(t *testing.T) {
	tenantID := uuid.New()
	cityID := uuid.New()

	t.Run("requires city and name", func(t *testing.T) {
		_, err := NewNeighborhood(tenantID, uuid.Nil, "Centro")
		assert.Error(t, err)

		_, err = NewNeighborhood(tenantID, cityID, "  ")
		assert.Error(t, err)
	})

	t.Run("personalized fee can be set and cleared", func(t *testing.T) {
		hood, err := NewNeighborhood(tenantID, cityID, "Centro")
		require.NoError(t, err)
		assert.False(t, hood.HasPersonalizedFee())

		require.NoError(t, hood.SetPersonalizedFee(decimal.NewFromFloat(4.50), "15-25"))
		assert.True(t, hood.HasPersonalizedFee())
		require.NotNil(t, hood.EstimatedTime)
		assert.Equal(t, "15-25", *hood.EstimatedTime)

		hood.ClearPersonalizedFee()
		assert.False(t, hood.HasPersonalizedFee())
		assert.Nil(t, hood.EstimatedTime)
	})

	t.Run("rejects negative personalized fee", func(t *testing.T) {
		hood, err := NewNeighborhood(tenantID, cityID, "Centro")
		require.NoError(t, err)

		err = hood.SetPersonalizedFee(decimal.NewFromFloat(-1), "")
		assert.Error(t, err)
	})

	t.Run("group assignment", func(t *testing.T) {
		hood, err := NewNeighborhood(tenantID, cityID, "Centro")
		require.NoError(t, err)

		assert.Error(t, hood.AssignGroup(uuid.Nil))

		groupID := uuid.New()
		require.NoError(t, hood.AssignGroup(groupID))
		require.NotNil(t, hood.GroupID)
		assert.Equal(t, groupID, *hood.GroupID)

		hood.RemoveFromGroup()
		assert.Nil(t, hood.GroupID)
	})
}
