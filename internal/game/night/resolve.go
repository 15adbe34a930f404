package night

import (
	"fmt"
	"strings"

	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"
)

// Result is the settled outcome of one night.
type Result struct {
	// Records holds what the night produced, in production order.
	// Acknowledgements of the submissions stay with the ledger.
	Records []Outcome
	// Deaths lists the participants killed tonight in seat order.
	Deaths []roster.ID
	// Converted is the predator that joined the mafia tonight, if any.
	Converted roster.ID
	// Quiet is set when nobody died.
	Quiet bool
}

// DeathNotices returns the records the day announcer reveals.
func (r Result) DeathNotices() []Outcome {
	var out []Outcome
	for _, o := range r.Records {
		if o.Kind == KindDeathNotice {
			out = append(out, o)
		}
	}
	return out
}

type reveal struct {
	reporter roster.ID
	target   roster.ID
}

// scratch is the per-night state shared by the dispatch pass.
type scratch struct {
	reg    *roster.Registry
	ledger *Ledger
	day    int

	killed   map[roster.ID]bool
	healed   map[roster.ID][]roster.ID
	defended map[roster.ID]bool
	// slain holds kills that ignore both armor and healing.
	slain map[roster.ID]bool

	converted roster.ID
	stalker   roster.ID
	stalked   roster.ID

	voteBlocks    map[roster.ID]bool
	abilityBlocks map[roster.ID]bool
	reveals       []reveal

	records []Outcome
}

// Resolve applies the ledger to the registry. The ledger is left intact;
// the caller clears it once the day is over.
func Resolve(reg *roster.Registry, ledger *Ledger, day int) Result {
	s := &scratch{
		reg:           reg,
		ledger:        ledger,
		day:           day,
		killed:        make(map[roster.ID]bool),
		healed:        make(map[roster.ID][]roster.ID),
		defended:      make(map[roster.ID]bool),
		slain:         make(map[roster.ID]bool),
		voteBlocks:    make(map[roster.ID]bool),
		abilityBlocks: make(map[roster.ID]bool),
	}

	for _, a := range ledger.Ordered() {
		actor, ok := reg.Get(a.Actor)
		if !ok || !actor.Alive {
			continue
		}
		target, ok := reg.Get(a.Target)
		if !ok {
			continue
		}
		s.apply(a, actor, target)
	}

	s.stalkerConversion()
	deaths := s.settleDeaths(day)
	s.announceConversion()
	s.publishReveals()
	s.applySilences()

	return Result{
		Records:   s.records,
		Deaths:    deaths,
		Converted: s.converted,
		Quiet:     len(deaths) == 0,
	}
}

func (s *scratch) apply(a Action, actor, target *roster.Participant) {
	d := actor.Descriptor()
	switch a.Effect {
	case role.EffectConditionalKill:
		s.predatorKill(actor, target)
	case role.EffectHeal:
		s.healed[target.ID] = append(s.healed[target.ID], actor.ID)
	case role.EffectKill:
		s.mafiaKill(actor, target)
	case role.EffectPassive:
	case role.EffectInvestigate:
		s.investigate(d, actor, target)
	case role.EffectReveal:
		s.reveals = append(s.reveals, reveal{reporter: actor.ID, target: target.ID})
		actor.AbilitySpent = true
	case role.EffectSilenceVote:
		s.voteBlocks[target.ID] = true
		s.emit(private(KindSilenced, target.ID, target.ID, actor.ID,
			"someone threatened you; you cannot vote tomorrow"))
	case role.EffectSilenceAbility:
		s.abilityBlocks[target.ID] = true
		s.emit(private(KindSilenced, target.ID, target.ID, actor.ID,
			"you were seduced; your ability is blocked tomorrow night"))
		s.contact(d, actor, target)
	case role.EffectResurrect:
		if s.reg.Revive(target.ID) {
			s.emit(public(KindResurrected, target.ID, actor.ID,
				fmt.Sprintf("%s has been brought back to life", target.Name)))
		}
		actor.AbilitySpent = true
	case role.EffectBond:
		s.bond(d, actor, target)
	}
}

func (s *scratch) predatorKill(actor, target *roster.Participant) {
	if actor.Converted {
		s.slain[target.ID] = true
		return
	}
	s.stalker = actor.ID
	s.stalked = target.ID
}

func (s *scratch) mafiaKill(actor, target *roster.Participant) {
	d := target.Descriptor()
	if d.Convertible && !target.Converted && !s.reg.ConversionSpent() {
		if s.reg.Convert(target.ID) {
			s.converted = target.ID
			return
		}
	}
	if target.ArmorCharges > 0 {
		target.ArmorCharges--
		s.defended[target.ID] = true
		delete(s.healed, target.ID)
		s.emit(private(KindArmor, target.ID, target.ID, actor.ID,
			"your armor absorbed an attack"))
		return
	}
	delete(s.defended, target.ID)
	s.killed[target.ID] = true
}

func (s *scratch) investigate(d role.Descriptor, actor, target *roster.Participant) {
	switch {
	case d.ExactInvestigation:
		s.emit(private(KindInvestigated, actor.ID, target.ID, actor.ID,
			fmt.Sprintf("%s is the %s", target.Name, target.Role)))
	case target.Role == role.KindMafia:
		s.emit(private(KindInvestigated, actor.ID, target.ID, actor.ID,
			fmt.Sprintf("%s is mafia", target.Name)))
	default:
		s.emit(private(KindInvestigated, actor.ID, target.ID, actor.ID,
			fmt.Sprintf("%s is not mafia", target.Name)))
	}
	s.contact(d, actor, target)
}

func (s *scratch) contact(d role.Descriptor, actor, target *roster.Participant) {
	if !d.ContactsMafia || target.Role != role.KindMafia {
		return
	}
	s.emit(private(KindContact, actor.ID, target.ID, actor.ID,
		fmt.Sprintf("you made contact with the mafia: %s", target.Name)))
	s.emit(private(KindContact, target.ID, actor.ID, actor.ID,
		fmt.Sprintf("%s, the %s, made contact with you", actor.Name, actor.Role)))
}

func (s *scratch) bond(d role.Descriptor, actor, target *roster.Participant) {
	if target.Role != d.Predecessor {
		s.emit(private(KindInvestigated, actor.ID, target.ID, actor.ID,
			fmt.Sprintf("%s is not the %s", target.Name, d.Predecessor)))
		return
	}
	if actor.BondedWith != target.ID {
		actor.BondedWith = target.ID
		actor.BondedOn = s.day
	}
	s.emit(private(KindBonded, actor.ID, target.ID, actor.ID,
		fmt.Sprintf("you bonded with %s, the %s", target.Name, target.Role)))
	s.emit(private(KindBonded, target.ID, actor.ID, actor.ID,
		fmt.Sprintf("%s, the %s, bonded with you", actor.Name, actor.Role)))
}

// stalkerConversion converts the predator when it hunted the mafia's
// consensus target and that target does not survive.
func (s *scratch) stalkerConversion() {
	if s.stalker == "" || s.converted != "" || s.reg.ConversionSpent() {
		return
	}
	consensus, ok := s.ledger.ConsensusTarget()
	if !ok || consensus != s.stalked {
		return
	}
	if !s.killed[consensus] || len(s.healed[consensus]) > 0 {
		return
	}
	if s.reg.Convert(s.stalker) {
		s.converted = s.stalker
	}
}

func (s *scratch) settleDeaths(day int) []roster.ID {
	var deaths []roster.ID
	for _, p := range s.reg.All() {
		if !p.Alive {
			continue
		}
		switch {
		case s.slain[p.ID] || (s.killed[p.ID] && len(s.healed[p.ID]) == 0):
			s.reg.Kill(p.ID, roster.DeathCauseNight, day)
			deaths = append(deaths, p.ID)
			s.emit(private(KindDeath, p.ID, p.ID, "", "you were killed tonight"))
			s.emit(Outcome{
				Kind:         KindDeathNotice,
				Visibility:   VisibilitySystem,
				Subject:      p.ID,
				Message:      fmt.Sprintf("%s was killed last night", p.Name),
				PendingDeath: true,
			})
		case s.killed[p.ID]:
			o := public(KindTreated, p.ID, s.healed[p.ID][0],
				fmt.Sprintf("%s was attacked but treated by a doctor", p.Name))
			o.Recipient = p.ID
			s.emit(o)
		}
	}
	return deaths
}

func (s *scratch) announceConversion() {
	if s.converted == "" {
		return
	}
	predator, ok := s.reg.Get(s.converted)
	if !ok {
		return
	}
	var names []string
	for _, m := range s.reg.MafiaAligned() {
		if m.ID == predator.ID {
			continue
		}
		names = append(names, m.Name)
		s.emit(private(KindConverted, m.ID, predator.ID, predator.ID,
			fmt.Sprintf("%s, the %s, has joined the mafia", predator.Name, predator.Role)))
	}
	s.emit(private(KindConverted, predator.ID, predator.ID, predator.ID,
		fmt.Sprintf("you joined the mafia; your teammates: %s", strings.Join(names, ", "))))
}

func (s *scratch) publishReveals() {
	for _, r := range s.reveals {
		reporter, ok := s.reg.Get(r.reporter)
		if !ok || !reporter.Alive {
			continue
		}
		target, ok := s.reg.Get(r.target)
		if !ok {
			continue
		}
		target.Revealed = true
		s.emit(public(KindRevealed, target.ID, reporter.ID,
			fmt.Sprintf("breaking news: %s is the %s", target.Name, target.Role)))
	}
}

// applySilences resets eligibility for the next phase. A block lasts for
// the day and night that follow this one.
func (s *scratch) applySilences() {
	for _, p := range s.reg.Alive() {
		p.CanVote = !s.voteBlocks[p.ID]
		p.CanUseAbility = !s.abilityBlocks[p.ID]
	}
}

func (s *scratch) emit(o Outcome) {
	s.records = append(s.records, o)
}
