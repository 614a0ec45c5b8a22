package seed

import (
	"fmt"

	"github.com/emprendevoz/emprende-api/internal/domain/certificate"
	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type Question struct {
	Question string
	Options  []string
}

// Questions is the entry diagnostic; option index i scores i points.
var Questions = []Question{
	{"¿Cuánta experiencia tienes vendiendo productos o servicios?",
		[]string{"Ninguna experiencia", "He vendido algunas veces", "Vendo regularmente", "Tengo un negocio establecido"}},
	{"¿Tienes un plan escrito de tu negocio?",
		[]string{"No, solo tengo ideas", "Tengo algunas notas", "Tengo un plan básico", "Tengo un plan completo y detallado"}},
	{"¿Conoces quiénes son tus clientes ideales?",
		[]string{"No lo tengo claro", "Tengo una idea general", "Sí, tengo clara mi audiencia", "Sí, y he validado con ellos"}},
	{"¿Llevas un control de tus ingresos y gastos?",
		[]string{"No llevo registro", "Lo hago mentalmente", "Tengo anotaciones básicas", "Uso herramientas de control financiero"}},
	{"¿Usas redes sociales o plataformas digitales para tu negocio?",
		[]string{"No las uso", "Las uso ocasionalmente", "Tengo presencia activa", "Tengo estrategia digital definida"}},
}

type Course struct {
	Title           string
	Description     string
	Category        string
	RouteType       string
	ModuleCode      string
	OrderNumber     int
	DurationMinutes int
	Sections        []string
}

// topics per certification module, two courses each
var topics = map[string][2]string{
	"M1": {"Validación de tu idea", "Conoce a tu cliente"},
	"M2": {"Finanzas para emprender", "Precios y costos"},
	"M3": {"Marketing digital", "Ventas y servicio"},
	"M4": {"Formalización", "Plan de crecimiento"},
}

// Courses builds the same module sequence for both routes, ordered M1 to M4.
func Courses() []Course {
	var out []Course
	for _, route := range []string{diagnostic.RoutePre, diagnostic.RouteInc} {
		order := 0
		for _, m := range certificate.Modules {
			for _, title := range topics[m.ID] {
				order++
				out = append(out, Course{
					Title:           title,
					Description:     fmt.Sprintf("%s · %s (%s)", m.Title, title, diagnostic.RouteLabel(route)),
					Category:        m.Title,
					RouteType:       route,
					ModuleCode:      m.ID,
					OrderNumber:     order,
					DurationMinutes: 45,
					Sections:        []string{"Introducción", "Herramientas prácticas", "Ejercicio final"},
				})
			}
		}
	}
	return out
}

var Achievements = []entity.Achievement{
	{Code: "first_course", Name: "Primer paso", Description: "Completa tu primer curso", Icon: "🎓", Points: 50,
		Category: entity.CategoryLearning, TriggerType: entity.TriggerFirstCourseCompleted, Threshold: 1},
	{Code: "courses_3", Name: "Aprendiz constante", Description: "Completa 3 cursos", Icon: "📚", Points: 100,
		Category: entity.CategoryLearning, TriggerType: entity.TriggerCourseCompleted, Threshold: 3},
	{Code: "courses_8", Name: "Ruta completa", Description: "Completa 8 cursos", Icon: "🏆", Points: 300,
		Category: entity.CategoryLearning, TriggerType: entity.TriggerCourseCompleted, Threshold: 8},
	{Code: "first_sale", Name: "Primera venta", Description: "Registra tu primera transacción", Icon: "💰", Points: 50,
		Category: entity.CategorySales, TriggerType: entity.TriggerTransactionCreated, Threshold: 1},
	{Code: "transactions_20", Name: "Finanzas en orden", Description: "Registra 20 transacciones", Icon: "📈", Points: 150,
		Category: entity.CategorySales, TriggerType: entity.TriggerTransactionCreated, Threshold: 20},
	{Code: "first_post", Name: "Voz emprendedora", Description: "Publica en la comunidad", Icon: "📣", Points: 30,
		Category: entity.CategoryCommunity, TriggerType: entity.TriggerPostCreated, Threshold: 1},
	{Code: "comments_10", Name: "Buen consejero", Description: "Escribe 10 comentarios", Icon: "💬", Points: 80,
		Category: entity.CategoryCommunity, TriggerType: entity.TriggerCommentCreated, Threshold: 10},
}

type Mentor struct {
	Name      string
	Specialty string
	Bio       string
}

var Mentors = []Mentor{
	{"Mario González", "Finanzas", "Contador con 15 años acompañando microempresas."},
	{"Lucía Herrera", "Marketing digital", "Estratega de redes sociales para negocios locales."},
	{"Andrés Ríos", "Modelo de negocio", "Fundador de dos empresas de alimentos."},
}

type Event struct {
	Title           string
	Description     string
	Type            string
	InDays          int
	Hour            int
	Location        string
	Virtual         bool
	MaxParticipants int
}

var Events = []Event{
	{"Taller: tu primer flujo de caja", "Aprende a proyectar ingresos y gastos.", "taller", 7, 15, "https://meet.emprendevoz.app/flujo", true, 50},
	{"Feria de emprendedores", "Muestra tus productos a la comunidad.", "feria", 21, 14, "Plaza central", false, 0},
	{"Networking mensual", "Conecta con otros emprendedores de tu ciudad.", "networking", 14, 18, "Casa Emprende", false, 30},
}
