package cmd

import (
	"log/slog"

	"garmentflow/internal/adapters/out/postgres"
	"garmentflow/internal/core/application/usecases/commands"
	"garmentflow/internal/core/application/usecases/queries"
	"garmentflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// orderReader serves read-only handlers outside any transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitTransitionCommandHandler() commands.SubmitTransitionCommandHandler {
	return commands.NewSubmitTransitionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateClaimDepartmentCommandHandler() commands.ClaimDepartmentCommandHandler {
	return commands.NewClaimDepartmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkUrgentCommandHandler() commands.MarkUrgentCommandHandler {
	return commands.NewMarkUrgentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetSLABufferCommandHandler() commands.SetSLABufferCommandHandler {
	return commands.NewSetSLABufferCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkStaleOrdersCommandHandler() commands.MarkStaleOrdersCommandHandler {
	return commands.NewMarkStaleOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetActionMapQueryHandler() queries.GetActionMapQueryHandler {
	return queries.NewGetActionMapQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetSLAStatusQueryHandler() queries.GetSLAStatusQueryHandler {
	return queries.NewGetSLAStatusQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateMarkStaleOrdersCommandHandler(),
		c.config.StaleSweepSpec,
		c.config.StaleAfterHours,
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
