package cached_test

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/modelhelpers/cached"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Team struct {
	ID      int
	Name    string
	counter int
}

func (t *Team) PK() any {
	return t.ID
}

func (t *Team) GetCounter() int {
	t.counter++
	return t.counter
}

// teams is a tiny model manager over go-memdb. Loaded rows are fresh
// instances, like rows read back from a database.
type teams struct {
	db     *memdb.MemDB
	nextID int
}

func newTeams(t *testing.T) *teams {
	t.Helper()
	db, err := memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"team": {
				Name: "team",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return &teams{db: db}
}

func (m *teams) Create(t *testing.T, name string) *Team {
	t.Helper()
	m.nextID++
	team := &Team{ID: m.nextID, Name: name}
	txn := m.db.Txn(true)
	defer txn.Abort()
	require.NoError(t, txn.Insert("team", team))
	txn.Commit()
	return &Team{ID: team.ID, Name: team.Name}
}

func (m *teams) Get(t *testing.T, id int) *Team {
	t.Helper()
	txn := m.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First("team", "id", id)
	require.NoError(t, err)
	require.NotNil(t, raw)
	row := raw.(*Team)
	return &Team{ID: row.ID, Name: row.Name}
}

func counterProperty(opts ...cached.Option) *cached.Property[*Team, int] {
	return cached.NewProperty("CachedCounter", func(ctx context.Context, t *Team) (int, error) {
		return t.GetCounter(), nil
	}, opts...)
}

func TestProperty_Cached(t *testing.T) {
	ctx := context.Background()
	objects := newTeams(t)
	cachedCounter := counterProperty(cached.WithStore(cached.NewMemoryStore(0, 0)))

	get := func(team *Team) int {
		v, err := cachedCounter.Get(ctx, team)
		require.NoError(t, err)
		return v
	}

	team1 := objects.Create(t, "Team1")
	team2 := objects.Create(t, "Team2")
	assert.Equal(t, 1, team1.GetCounter())
	assert.Equal(t, 2, team1.GetCounter())
	assert.Equal(t, 3, team1.GetCounter())

	assert.Equal(t, 4, get(team1))
	assert.Equal(t, 4, get(team1))
	assert.Equal(t, 4, get(team1))

	team1New := objects.Get(t, team1.ID)
	assert.Equal(t, 4, get(team1New))
	assert.Equal(t, 4, get(team1New))

	team2.GetCounter()
	assert.Equal(t, 2, get(team2))
	assert.Equal(t, 2, get(team2))

	require.NoError(t, cachedCounter.Delete(ctx, team1New))
	assert.Equal(t, 5, get(team1))
	assert.Equal(t, 5, get(team1New))
	require.NoError(t, cachedCounter.Delete(ctx, team1New))
	assert.Equal(t, 1, get(team1New))

	assert.Equal(t, 2, get(team2))
}

func TestProperty_ReadOnly(t *testing.T) {
	p := counterProperty(cached.WithStore(cached.NewMemoryStore(0, 0)))
	assert.False(t, p.Writable())
	err := p.Set(context.Background(), &Team{ID: 1}, 77)
	assert.ErrorIs(t, err, cached.ErrReadOnly)
}

func TestProperty_Writable(t *testing.T) {
	ctx := context.Background()
	objects := newTeams(t)
	writable := counterProperty(cached.WithStore(cached.NewMemoryStore(0, 0)), cached.Writable())
	require.True(t, writable.Writable())

	get := func(team *Team) int {
		v, err := writable.Get(ctx, team)
		require.NoError(t, err)
		return v
	}

	team1 := objects.Create(t, "Team1")
	team2 := objects.Create(t, "Team2")
	assert.Equal(t, 1, get(team1))
	assert.Equal(t, 1, get(team2))

	require.NoError(t, writable.Set(ctx, team1, 77))
	assert.Equal(t, 77, get(team1))
	assert.Equal(t, 77, get(objects.Get(t, team1.ID)))
	assert.Equal(t, 1, get(team2))
	assert.Equal(t, 1, get(objects.Get(t, team2.ID)))

	require.NoError(t, writable.Delete(ctx, team1))
	assert.Equal(t, 2, get(team1))
	assert.Equal(t, 1, get(team2))
	require.NoError(t, writable.Delete(ctx, team2))
	assert.Equal(t, 2, get(team2))
}

func TestProperty_Timeout(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := cached.NewMemoryStore(0, 3*time.Second, cached.WithClock(clock.Now))

	oneSecond := cached.NewProperty("OneSecCache", func(ctx context.Context, t *Team) (int, error) {
		return t.GetCounter(), nil
	}, cached.WithStore(store), cached.WithTimeout(time.Second))
	defaultTimeout := counterProperty(cached.WithStore(store))

	team := &Team{ID: 1, Name: "Team1"}
	for range 3 {
		v, err := oneSecond.Get(ctx, team)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	clock.Advance(2 * time.Second)
	for range 2 {
		v, err := oneSecond.Get(ctx, team)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	}

	other := &Team{ID: 2, Name: "Team2"}
	for range 2 {
		v, err := defaultTimeout.Get(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	clock.Advance(4 * time.Second)
	v, err := defaultTimeout.Get(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

type Player struct {
	ID int
}

func (p Player) PK() any {
	return p.ID
}

func TestProperty_KeyedByOwnerType(t *testing.T) {
	team, err := counterProperty().Key(&Team{ID: 1})
	require.NoError(t, err)
	player, err := cached.NewProperty("CachedCounter", func(ctx context.Context, p Player) (int, error) {
		return 0, nil
	}).Key(Player{ID: 1})
	require.NoError(t, err)
	assert.NotEqual(t, team, player)
}
