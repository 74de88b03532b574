package report

import (
	"fmt"
	"strings"
	"time"
)

// SummaryInput datos del parte de fin de jornada. Cualquier hueco se rinde con
// el placeholder "none" para que el texto nunca quede ambiguo o malformado.
type SummaryInput struct {
	ProjectName   string
	WorkerName    string
	DepartureTime *time.Time
	DoneTasks     []string
	Notes         string
	PhotoCount    int
	Date          time.Time
}

const summaryPlaceholder = "none"

// Summary genera el asunto y el cuerpo del parte de fin de jornada. El texto se
// entrega a la superficie de correo externa; el core no envía nada.
func Summary(in SummaryInput) (subject, body string) {
	subject = fmt.Sprintf("RAPPORT DE CHANTIER - %s - %s",
		strings.ToUpper(orPlaceholder(in.ProjectName)), in.Date.Format(dateLayout))

	departure := summaryPlaceholder
	if in.DepartureTime != nil {
		departure = in.DepartureTime.Format(timeLayout)
	}
	tasks := summaryPlaceholder
	if len(in.DoneTasks) > 0 {
		lines := make([]string, len(in.DoneTasks))
		for i, label := range in.DoneTasks {
			lines[i] = "- " + label
		}
		tasks = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parte de fin de jornada - %s\n", orPlaceholder(in.ProjectName))
	b.WriteString("--------------------------------------------------\n")
	fmt.Fprintf(&b, "Operario: %s\n", orPlaceholder(in.WorkerName))
	fmt.Fprintf(&b, "Hora de salida: %s\n\n", departure)
	b.WriteString("TAREAS TERMINADAS:\n")
	b.WriteString(tasks)
	b.WriteString("\n\nNOTAS DEL DÍA:\n")
	b.WriteString(orPlaceholder(in.Notes))
	fmt.Fprintf(&b, "\n\nFOTOS: %d añadidas al dossier.\n", in.PhotoCount)
	b.WriteString("--------------------------------------------------\n")
	b.WriteString("Parte generado automáticamente.\n")
	return subject, b.String()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return summaryPlaceholder
	}
	return s
}
