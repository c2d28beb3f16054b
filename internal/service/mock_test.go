package service

import (
	"context"
	"io"
	"log/slog"

	"schemacat/internal/adapter"
	"schemacat/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepo implements domain.UserRepository with overridable functions.
type mockUserRepo struct {
	createFn     func(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error)
	touchFn      func(ctx context.Context, id string) error
}

var _ domain.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	return m.createFn(ctx, req)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	if m.touchFn == nil {
		return nil
	}
	return m.touchFn(ctx, id)
}
func (m *mockUserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	panic("not implemented")
}
func (m *mockUserRepo) Delete(ctx context.Context, id string) error { panic("not implemented") }

// mockIntegrationRepo implements domain.IntegrationRepository.
type mockIntegrationRepo struct {
	createFn  func(ctx context.Context, req domain.CreateIntegrationRequest) (*domain.Integration, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Integration, error)
	listFn    func(ctx context.Context) ([]domain.Integration, error)
	updateFn  func(ctx context.Context, id string, req domain.UpdateIntegrationRequest) (*domain.Integration, error)
	deleteFn  func(ctx context.Context, id string) error
}

var _ domain.IntegrationRepository = (*mockIntegrationRepo)(nil)

func (m *mockIntegrationRepo) Create(ctx context.Context, req domain.CreateIntegrationRequest) (*domain.Integration, error) {
	return m.createFn(ctx, req)
}
func (m *mockIntegrationRepo) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockIntegrationRepo) List(ctx context.Context) ([]domain.Integration, error) {
	return m.listFn(ctx)
}
func (m *mockIntegrationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Integration, error) {
	panic("not implemented")
}
func (m *mockIntegrationRepo) ListActiveByUser(ctx context.Context, userID string) ([]domain.Integration, error) {
	panic("not implemented")
}
func (m *mockIntegrationRepo) ListByUserAndType(ctx context.Context, userID, integrationType string) ([]domain.Integration, error) {
	panic("not implemented")
}
func (m *mockIntegrationRepo) Update(ctx context.Context, id string, req domain.UpdateIntegrationRequest) (*domain.Integration, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockIntegrationRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// mockCollectionRepo implements domain.CollectionRepository.
type mockCollectionRepo struct {
	createFn func(ctx context.Context, c *domain.Collection) (*domain.Collection, error)
	getFn    func(ctx context.Context, id string) (*domain.Collection, error)
	listFn   func(ctx context.Context, integrationID string, limit int) ([]domain.Collection, error)
}

var _ domain.CollectionRepository = (*mockCollectionRepo)(nil)

func (m *mockCollectionRepo) Create(ctx context.Context, c *domain.Collection) (*domain.Collection, error) {
	return m.createFn(ctx, c)
}
func (m *mockCollectionRepo) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	return m.getFn(ctx, id)
}
func (m *mockCollectionRepo) ListByIntegration(ctx context.Context, integrationID string, limit int) ([]domain.Collection, error) {
	return m.listFn(ctx, integrationID, limit)
}
func (m *mockCollectionRepo) Delete(ctx context.Context, id string) error { panic("not implemented") }

// mockFieldRepo implements domain.PhysicalFieldRepository.
type mockFieldRepo struct {
	createFn func(ctx context.Context, f *domain.PhysicalField) (*domain.PhysicalField, error)
	listFn   func(ctx context.Context, collectionID string) ([]domain.PhysicalField, error)
}

var _ domain.PhysicalFieldRepository = (*mockFieldRepo)(nil)

func (m *mockFieldRepo) Create(ctx context.Context, f *domain.PhysicalField) (*domain.PhysicalField, error) {
	return m.createFn(ctx, f)
}
func (m *mockFieldRepo) ListByCollection(ctx context.Context, collectionID string) ([]domain.PhysicalField, error) {
	return m.listFn(ctx, collectionID)
}

// mockSchemaRepo implements domain.LogicalSchemaRepository.
type mockSchemaRepo struct {
	getByIDFn  func(ctx context.Context, id string) (*domain.LogicalSchema, error)
	createFn   func(ctx context.Context, req domain.CreateLogicalSchemaRequest) (*domain.LogicalSchema, error)
	addFieldFn func(ctx context.Context, schemaID string, req domain.CreateLogicalFieldRequest) (*domain.LogicalField, error)
}

var _ domain.LogicalSchemaRepository = (*mockSchemaRepo)(nil)

func (m *mockSchemaRepo) Create(ctx context.Context, req domain.CreateLogicalSchemaRequest) (*domain.LogicalSchema, error) {
	return m.createFn(ctx, req)
}
func (m *mockSchemaRepo) GetByID(ctx context.Context, id string) (*domain.LogicalSchema, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockSchemaRepo) GetByName(ctx context.Context, name string) (*domain.LogicalSchema, error) {
	panic("not implemented")
}
func (m *mockSchemaRepo) List(ctx context.Context) ([]domain.LogicalSchema, error) {
	panic("not implemented")
}
func (m *mockSchemaRepo) Update(ctx context.Context, id string, req domain.UpdateLogicalSchemaRequest) (*domain.LogicalSchema, error) {
	panic("not implemented")
}
func (m *mockSchemaRepo) Delete(ctx context.Context, id string) error { panic("not implemented") }
func (m *mockSchemaRepo) AddField(ctx context.Context, schemaID string, req domain.CreateLogicalFieldRequest) (*domain.LogicalField, error) {
	return m.addFieldFn(ctx, schemaID, req)
}
func (m *mockSchemaRepo) UpdateField(ctx context.Context, fieldID string, req domain.UpdateLogicalFieldRequest) (*domain.LogicalField, error) {
	panic("not implemented")
}
func (m *mockSchemaRepo) DeleteField(ctx context.Context, fieldID string) error {
	panic("not implemented")
}

// mockMappingRepo implements domain.MappingRepository.
type mockMappingRepo struct {
	createFn       func(ctx context.Context, req domain.CreateMappingRequest) (*domain.MappingDetail, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.MappingDetail, error)
	listBySchemaFn func(ctx context.Context, schemaID string) ([]domain.MappingDetail, error)
	replaceFn      func(ctx context.Context, mappingID string, reqs []domain.CreateFieldMappingRequest) (*domain.MappingDetail, error)
	findFn         func(ctx context.Context, schemaID, collectionID string) (*domain.MappingDetail, error)
	listFieldsFn   func(ctx context.Context, mappingID string) ([]domain.FieldMappingDetail, error)
}

var _ domain.MappingRepository = (*mockMappingRepo)(nil)

func (m *mockMappingRepo) Create(ctx context.Context, req domain.CreateMappingRequest) (*domain.MappingDetail, error) {
	return m.createFn(ctx, req)
}
func (m *mockMappingRepo) GetByID(ctx context.Context, id string) (*domain.MappingDetail, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockMappingRepo) ListBySchema(ctx context.Context, logicalSchemaID string) ([]domain.MappingDetail, error) {
	return m.listBySchemaFn(ctx, logicalSchemaID)
}
func (m *mockMappingRepo) FindBySchemaAndCollection(ctx context.Context, logicalSchemaID, collectionID string) (*domain.MappingDetail, error) {
	return m.findFn(ctx, logicalSchemaID, collectionID)
}
func (m *mockMappingRepo) Delete(ctx context.Context, id string) error { panic("not implemented") }
func (m *mockMappingRepo) ReplaceFieldMappings(ctx context.Context, mappingID string, fieldMappings []domain.CreateFieldMappingRequest) (*domain.MappingDetail, error) {
	return m.replaceFn(ctx, mappingID, fieldMappings)
}
func (m *mockMappingRepo) ListFieldMappings(ctx context.Context, mappingID string) ([]domain.FieldMappingDetail, error) {
	return m.listFieldsFn(ctx, mappingID)
}

// mockAdapter implements adapter.Adapter.
type mockAdapter struct {
	validateFn func(ctx context.Context, cfg domain.DatasourceConfig) bool
	collectFn  func(ctx context.Context, cfg domain.DatasourceConfig) domain.CollectionDiscovery
	fieldsFn   func(ctx context.Context, cfg domain.DatasourceConfig, collectionName string) domain.FieldDiscovery
	convertFn  func(ast *domain.QueryAST, fieldMappings map[string]string) string
}

var _ adapter.Adapter = (*mockAdapter)(nil)

func (m *mockAdapter) ValidateConnection(ctx context.Context, cfg domain.DatasourceConfig) bool {
	if m.validateFn == nil {
		return true
	}
	return m.validateFn(ctx, cfg)
}
func (m *mockAdapter) DiscoverCollections(ctx context.Context, cfg domain.DatasourceConfig) domain.CollectionDiscovery {
	return m.collectFn(ctx, cfg)
}
func (m *mockAdapter) DiscoverFields(ctx context.Context, cfg domain.DatasourceConfig, collectionName string) domain.FieldDiscovery {
	return m.fieldsFn(ctx, cfg, collectionName)
}
func (m *mockAdapter) ConvertQueryAST(ast *domain.QueryAST, fieldMappings map[string]string) string {
	if m.convertFn == nil {
		return ""
	}
	return m.convertFn(ast, fieldMappings)
}
func (m *mockAdapter) Query(ctx context.Context, cfg domain.DatasourceConfig, collectionName string, params map[string]any) ([]map[string]any, error) {
	panic("not implemented")
}
