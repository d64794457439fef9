package models

import (
	"context"
	"os"
	"time"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/utils"
)

func seedPassword() string {
	if v := os.Getenv("SEED_PASSWORD"); v != "" {
		return v
	}
	return "mudar123"
}

// SeedDemoData loads the demo dataset (5 areas, 4 users, 6 invoices) used
// by local environments. It is a no-op when areas already exist.
func SeedDemoData(ctx context.Context) error {
	db := config.GetDB()

	var count int64
	if err := db.WithContext(ctx).Model(&Area{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	areas := []Area{
		{ID: 1, Name: "Central de Notas", Emails: []string{"central.notas@empresa.com"}},
		{ID: 2, Name: "Cadastro", Emails: []string{"cadastro@empresa.com", "master.cadastro@empresa.com"}},
		{ID: 3, Name: "Comprador", Emails: []string{"compras@empresa.com"}},
		{ID: 4, Name: "Fiscal", Emails: []string{"fiscal@empresa.com"}},
		{ID: 5, Name: "Gestão de Estoque", Emails: []string{"estoque@empresa.com"}},
	}
	if err := db.WithContext(ctx).Create(&areas).Error; err != nil {
		return err
	}

	hashed, err := utils.HashPassword(seedPassword())
	if err != nil {
		return err
	}
	password := string(hashed)

	users := []User{
		{
			ID: 1, Username: "admin", Name: "Administrador (Geral)", Password: password,
			Role: UserRoleGeneral, Code: "001", ErpUser: "ADMIN",
			Email: "admin@empresa.com", Company: "Matriz",
			AreaIds:        []int{},
			AllowedPages:   []string{PageDashboard, PageReports, PageAreas, PageUsers},
			AllowedReports: []string{ReportProactivity, ReportMotives},
		},
		{
			ID: 2, Username: "joao.silva", Name: "João (Fiscal)", Password: password,
			Role: UserRoleAreaSpecialist, Code: "102", ErpUser: "JOAO.SILVA",
			Email: "joao.silva@empresa.com", Company: "Loja 01",
			AreaIds:        []int{4},
			AllowedPages:   []string{PageDashboard, PageReports},
			AllowedReports: []string{ReportProactivity},
		},
		{
			ID: 3, Username: "maria.souza", Name: "Maria (Cadastro)", Password: password,
			Role: UserRoleAreaSpecialist, Code: "103", ErpUser: "MARIA.SOUZA",
			Email: "maria.souza@empresa.com", Company: "Matriz",
			AreaIds:        []int{2},
			AllowedPages:   []string{PageDashboard},
			AllowedReports: []string{},
		},
		{
			ID: 4, Username: "carlos.oliveira", Name: "Carlos (Comprador)", Password: password,
			Role: UserRoleAreaSpecialist, Code: "104", ErpUser: "CARLOS.OLIVEIRA",
			Email: "carlos.o@empresa.com", Company: "CD 01",
			AreaIds:        []int{3},
			AllowedPages:   []string{PageDashboard, PageReports},
			AllowedReports: []string{ReportMotives},
		},
	}
	if err := db.WithContext(ctx).Create(&users).Error; err != nil {
		return err
	}

	invoices := SeedInvoices()
	if err := db.WithContext(ctx).Create(&invoices).Error; err != nil {
		return err
	}

	// drop stale cache entries from a previous dataset
	return config.RemoveRedisKey("AreaList", "UserList")
}

// SeedInvoices returns the six-invoice demo collection. Exposed so tests
// can run the filter/pagination/report fixtures against the same data.
func SeedInvoices() []Invoice {
	date := func(s string) time.Time {
		t, _ := ParseDate(s)
		return t
	}
	stamp := func(s string) *time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return &t
	}
	by := func(id int) *int { return &id }

	return []Invoice{
		{
			ID: 1, NfeNumber: "0015023", CompanyNumber: "1001", CompanyName: "Tech Solutions Ltda",
			AccessKey: "35230912345678000199550010000015023123456789",
			IssueDate: date("2023-10-25"),
			Inconsistencies: []Inconsistency{
				{ID: 1, Description: "NCM do produto \"Teclado Mecânico\" inválido para a operação.", AreaId: 4},
				{ID: 2, Description: "Alíquota de ICMS difere do cadastro do produto.", AreaId: 2},
			},
		},
		{
			ID: 2, NfeNumber: "0015024", CompanyNumber: "2050", CompanyName: "Logística Rapida S.A.",
			AccessKey: "35230998765432000188550010000015024987654321",
			IssueDate: date("2023-10-26"),
			Inconsistencies: []Inconsistency{
				{ID: 3, Description: "Divergência no valor total dos produtos x valor da nota.", AreaId: 1},
				{
					ID: 4, Description: "CFOP 5.102 incompatível com destinatário fora do estado.", AreaId: 4,
					IsResolved:    true,
					SolutionNotes: "Alterado CFOP para 6.102 conforme orientação da contabilidade.",
					ResolvedAt:    stamp("2023-10-28T10:00:00Z"),
					ResolvedBy:    by(2),
				},
				{ID: 5, Description: "Falta informação de volume transportado.", AreaId: 5},
			},
		},
		{
			ID: 3, NfeNumber: "0015025", CompanyNumber: "1001", CompanyName: "Tech Solutions Ltda",
			AccessKey: "35231011223344000177550010000015025112233445",
			IssueDate:  date("2023-10-27"),
			ResolvedAt: stamp("2023-10-29T14:30:00Z"),
			Inconsistencies: []Inconsistency{
				{
					ID: 6, Description: "CNPJ do destinatário não cadastrado na base.", AreaId: 2,
					IsResolved:    true,
					SolutionNotes: "Cliente cadastrado manualmente no ERP (Cod: 998877).",
					ResolvedAt:    stamp("2023-10-29T14:30:00Z"),
					ResolvedBy:    by(3),
				},
			},
		},
		{
			ID: 4, NfeNumber: "0000892", CompanyNumber: "3099", CompanyName: "Mercado Varejo Express",
			AccessKey: "41231099887766000155550010000000892998877665",
			IssueDate: date("2023-10-28"),
			Inconsistencies: []Inconsistency{
				{ID: 7, Description: "Produto sem código de barras (GTIN).", AreaId: 2},
				{ID: 8, Description: "Data de saída anterior à data de emissão.", AreaId: 1},
			},
		},
		{
			ID: 5, NfeNumber: "0015026", CompanyNumber: "1001", CompanyName: "Tech Solutions Ltda",
			AccessKey: "35231155443322000111550010000015026554433221",
			IssueDate: date("2023-11-01"),
			Inconsistencies: []Inconsistency{
				{ID: 9, Description: "Valor do IPI não calculado.", AreaId: 4},
			},
		},
		{
			ID: 6, NfeNumber: "0015027", CompanyNumber: "5005", CompanyName: "Indústria Metalúrgica",
			AccessKey: "35231155443322000111550010000015027554433229",
			IssueDate:  date("2023-11-02"),
			ResolvedAt: stamp("2023-11-03T11:00:00Z"),
			Inconsistencies: []Inconsistency{
				{
					ID: 10, Description: "NCM do produto \"Teclado Mecânico\" inválido para a operação.", AreaId: 4,
					IsResolved:    true,
					SolutionNotes: "Ajustado NCM para 8471.60.52 no cadastro de produtos.",
					ResolvedAt:    stamp("2023-11-03T11:00:00Z"),
					ResolvedBy:    by(2),
				},
				{
					ID: 11, Description: "Divergência de valores.", AreaId: 4,
					IsResolved:    true,
					SolutionNotes: "Valores ajustados manualmente com autorização da gerência.",
					ResolvedAt:    stamp("2023-11-03T10:00:00Z"),
					ResolvedBy:    by(2),
				},
			},
		},
	}
}
