package report

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"
)

// Sweeper remove arquivos de relatório esquecidos no disco, por exemplo
// quando o processo caiu no meio de uma requisição.
type Sweeper struct {
	root   string
	maxAge time.Duration
	log    *logrus.Logger
	now    func() time.Time
}

func NewSweeper(root string, maxAge time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{root: root, maxAge: maxAge, log: log, now: time.Now}
}

// Sweep apaga os arquivos financial_report_* mais velhos que maxAge e
// devolve quantos foram removidos.
func (s *Sweeper) Sweep() int {
	cutoff := s.now().Add(-s.maxAge)
	removed := 0

	for _, format := range []Format{FormatPDF, FormatCSV} {
		dir := filepath.Join(s.root, string(format))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				s.log.WithError(err).WithField("dir", dir).Warn("sweeper: falha ao listar diretório")
			}
			continue
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) {
				continue
			}
			info, err := e.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				s.log.WithError(err).WithField("path", path).Warn("sweeper: falha ao remover arquivo")
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.log.WithField("removed", removed).Info("sweeper: relatórios antigos removidos")
	}
	return removed
}

// Start agenda Sweep a cada everyMinutes. A função devolvida para o agendador.
func (s *Sweeper) Start(everyMinutes uint64) (stop func(), err error) {
	sched := gocron.NewScheduler()
	if err := sched.Every(everyMinutes).Minutes().Do(func() { s.Sweep() }); err != nil {
		return nil, err
	}
	stopped := sched.Start()
	return func() {
		sched.Clear()
		close(stopped)
	}, nil
}
