package mysql

// Repository aggregates all MySQL repositories
type Repository struct {
	ds *Datastore

	Server              *ServerRepository
	Redis               *RedisRepository
	EnvironmentVariable *EnvironmentVariableRepository
}

// NewRepository creates a new MySQL repository with all sub-repositories
func NewRepository(dsn string) (*Repository, error) {
	ds, err := NewDatastore(dsn)
	if err != nil {
		return nil, err
	}
	return NewRepositoryFromDatastore(ds), nil
}

// NewRepositoryFromDatastore wires sub-repositories on an open datastore
func NewRepositoryFromDatastore(ds *Datastore) *Repository {
	return &Repository{
		ds:                  ds,
		Server:              NewServerRepository(ds),
		Redis:               NewRedisRepository(ds),
		EnvironmentVariable: NewEnvironmentVariableRepository(ds),
	}
}

// GetDatastore returns the underlying datastore for transaction support
func (r *Repository) GetDatastore() *Datastore {
	return r.ds
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.ds.Close()
}
