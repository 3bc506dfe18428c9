package effect

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func baseContent(t *testing.T) *content.Static {
	t.Helper()
	cat, err := content.Base()
	if err != nil {
		t.Fatalf("content.Base: %v", err)
	}
	return cat
}

func testState() game.State {
	return game.State{
		Round:     1,
		TimeOfDay: game.Day,
		Phase:     game.PhaseTurns,
		Players: []game.Player{{
			ID:        "p1",
			HeroID:    "arythea",
			Level:     1,
			Armor:     2,
			HandLimit: 5,
			Deck:      []string{"march", "rage", "stamina"},
		}},
		TurnOrder: []string{"p1"},
		Map: game.Map{Hexes: map[string]game.Hex{
			"0,0": {Coord: game.Coord{}, Terrain: game.TerrainHills},
		}},
	}
}

func testEnv(t *testing.T) Env {
	return Env{Content: baseContent(t), PlayerID: "p1", Source: game.ChoiceSource{Kind: game.SourceCard, ID: "test"}}
}

func inCombat(s game.State, phase game.CombatPhase, enemies ...string) game.State {
	c := &game.CombatState{PlayerID: "p1", Phase: phase}
	for _, id := range enemies {
		c.Enemies = append(c.Enemies, game.CombatEnemy{InstanceID: id, EnemyID: "prowlers", Origin: game.OriginRampaging})
	}
	return s.WithCombat(c)
}

func mustPlayer(t *testing.T, s game.State) game.Player {
	t.Helper()
	p, err := s.MustPlayer("p1")
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return p
}

func TestEveryKindHasExecutionAndDetection(t *testing.T) {
	all := []game.EffectKind{
		game.EffectNoop, game.EffectGainMove, game.EffectGainInfluence, game.EffectGainAttack,
		game.EffectGainBlock, game.EffectGainHealing, game.EffectGainMana, game.EffectGainCrystal,
		game.EffectDrawCards, game.EffectGainFame, game.EffectChangeReputation, game.EffectApplyModifier,
		game.EffectTakeWound, game.EffectPayMana, game.EffectCompound, game.EffectConditional,
		game.EffectScaling, game.EffectChoice, game.EffectCostGated,
	}
	if len(Kinds()) != len(all) {
		t.Fatalf("table has %d kinds, want %d", len(Kinds()), len(all))
	}
	for _, k := range all {
		spec, ok := kinds[k]
		if !ok {
			t.Fatalf("kind %s missing from table", k)
		}
		isLeaf := spec.leaf != nil && spec.caps != nil
		isCombinator := spec.children != nil
		if isLeaf == isCombinator {
			t.Fatalf("kind %s must be exactly one of leaf or combinator", k)
		}
	}
}

func TestCompoundAppliesInOrder(t *testing.T) {
	e := game.Effect{Kind: game.EffectCompound, Effects: []game.Effect{
		{Kind: game.EffectGainMove, Amount: 2},
		{Kind: game.EffectGainInfluence, Amount: 3},
		{Kind: game.EffectGainMana, Color: game.ColorRed},
	}}
	out, err := Resolve(testEnv(t), testState(), e)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	p := mustPlayer(t, out.State)
	if p.Turn.MovePoints != 2 || p.Turn.InfluencePoints != 3 || !reflect.DeepEqual(p.ManaTokens, []game.Color{game.ColorRed}) {
		t.Fatalf("player = %+v", p)
	}
	if len(out.Events) != 3 || out.Events[0].Type != event.TypeResourceGained {
		t.Fatalf("events = %+v", out.Events)
	}
	if out.Revealed || out.Suspended {
		t.Fatalf("outcome flags = %+v", out)
	}
}

func TestChoiceSuspendsAndResumesWithContinuation(t *testing.T) {
	s := inCombat(testState(), game.CombatAttack, "enemy-1")
	e := game.Effect{Kind: game.EffectCompound, Effects: []game.Effect{
		{Kind: game.EffectChoice, Effects: []game.Effect{
			{Kind: game.EffectGainAttack, Amount: 2, AttackKind: game.AttackMelee},
			{Kind: game.EffectGainAttack, Amount: 2, AttackKind: game.AttackMelee, Element: game.ElementFire},
		}},
		{Kind: game.EffectGainMove, Amount: 1},
	}}
	env := testEnv(t)
	out, err := Resolve(env, s, e)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !out.Suspended {
		t.Fatal("expected suspension")
	}
	p := mustPlayer(t, out.State)
	if p.PendingChoice == nil || len(p.PendingChoice.Options) != 2 || len(p.PendingChoice.Continuation) != 1 {
		t.Fatalf("pending = %+v", p.PendingChoice)
	}
	if p.Turn.MovePoints != 0 {
		t.Fatal("continuation ran before the choice")
	}

	resumed, err := ResumeChoice(Env{Content: env.Content, PlayerID: "p1"}, out.State, 1)
	if err != nil {
		t.Fatalf("ResumeChoice: %v", err)
	}
	p = mustPlayer(t, resumed.State)
	if p.PendingChoice != nil {
		t.Fatal("pending choice not cleared")
	}
	if p.Pools.Melee.Fire != 2 || p.Pools.Melee.Physical != 0 || p.Turn.MovePoints != 1 {
		t.Fatalf("player after resume = %+v", p)
	}
}

func TestResumeChoiceErrors(t *testing.T) {
	env := testEnv(t)
	if _, err := ResumeChoice(env, testState(), 0); !errors.Is(err, ErrNoPendingChoice) {
		t.Fatalf("err = %v, want ErrNoPendingChoice", err)
	}
	s := testState()
	p := mustPlayer(t, s)
	p.PendingChoice = &game.PendingChoice{Options: []game.Effect{{Kind: game.EffectNoop}}}
	s = s.WithPlayer(p)
	if _, err := ResumeChoice(env, s, 3); !errors.Is(err, ErrChoiceIndex) {
		t.Fatalf("err = %v, want ErrChoiceIndex", err)
	}
}

func TestSingleResolvableOptionAutoResolves(t *testing.T) {
	cat := baseContent(t)
	rage, _ := cat.Card("rage")
	s := inCombat(testState(), game.CombatBlock, "enemy-1")
	out, err := Resolve(testEnv(t), s, rage.Basic)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	p := mustPlayer(t, out.State)
	if out.Suspended || p.PendingChoice != nil {
		t.Fatal("expected auto-resolution")
	}
	if p.Pools.Block.Physical != 2 {
		t.Fatalf("block = %+v, want 2 physical", p.Pools.Block)
	}
	if Resolvable(testEnv(t), testState(), rage.Basic) {
		t.Fatal("rage must not be resolvable outside combat")
	}
}

func TestConditionalUsesTimeOfDay(t *testing.T) {
	cat := baseContent(t)
	skill, _ := cat.Skill("dark_paths")
	s := testState()
	out, err := Resolve(testEnv(t), s, skill.Effect)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustPlayer(t, out.State).Turn.MovePoints; got != 1 {
		t.Fatalf("day move = %d, want 1", got)
	}
	s.TimeOfDay = game.Night
	out, err = Resolve(testEnv(t), s, skill.Effect)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustPlayer(t, out.State).Turn.MovePoints; got != 2 {
		t.Fatalf("night move = %d, want 2", got)
	}
}

func TestScalingReadsStateAtResolution(t *testing.T) {
	cat := baseContent(t)
	card, _ := cat.Card("in_need")
	s := testState()
	p := mustPlayer(t, s)
	p.Hand = []string{game.WoundCardID, "march", game.WoundCardID}
	s = s.WithPlayer(p)
	out, err := Resolve(testEnv(t), s, card.Powered)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustPlayer(t, out.State).Turn.InfluencePoints; got != 9 {
		t.Fatalf("influence = %d, want 5 + 2*2", got)
	}
}

func TestCostGatedRequiresPayment(t *testing.T) {
	e := game.Effect{
		Kind: game.EffectCostGated,
		Cost: &game.Effect{Kind: game.EffectPayMana, Color: game.ColorBlue},
		Then: &game.Effect{Kind: game.EffectGainCrystal, Color: game.ColorBlue},
	}
	s := testState()
	out, err := Resolve(testEnv(t), s, e)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(out.State, s) || len(out.Events) != 0 {
		t.Fatal("unpaid cost must leave state unchanged")
	}

	p := mustPlayer(t, s)
	p.ManaTokens = []game.Color{game.ColorBlue}
	s = s.WithPlayer(p)
	out, err = Resolve(testEnv(t), s, e)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	p = mustPlayer(t, out.State)
	if p.ManaTokens != nil || p.Crystals.Blue != 1 {
		t.Fatalf("player = %+v", p)
	}
}

func TestGoldPaysBasicByDayOnly(t *testing.T) {
	s := testState()
	p := mustPlayer(t, s)
	p.ManaTokens = []game.Color{game.ColorGold}
	s = s.WithPlayer(p)
	pay := game.Effect{Kind: game.EffectPayMana, Color: game.ColorRed}
	if !Resolvable(testEnv(t), s, pay) {
		t.Fatal("gold must pay red by day")
	}
	s.TimeOfDay = game.Night
	if Resolvable(testEnv(t), s, pay) {
		t.Fatal("gold must not pay at night")
	}
}

func TestDrawRevealsHiddenInformation(t *testing.T) {
	out, err := Resolve(testEnv(t), testState(), game.Effect{Kind: game.EffectDrawCards, Amount: 2})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	p := mustPlayer(t, out.State)
	if !out.Revealed || !reflect.DeepEqual(p.Hand, []string{"march", "rage"}) || !reflect.DeepEqual(p.Deck, []string{"stamina"}) {
		t.Fatalf("draw = %+v revealed=%v", p, out.Revealed)
	}
}

func TestCrystalOverflowBecomesToken(t *testing.T) {
	s := testState()
	p := mustPlayer(t, s)
	p.Crystals = game.Crystals{Red: game.MaxCrystals}
	s = s.WithPlayer(p)
	out, err := Resolve(testEnv(t), s, game.Effect{Kind: game.EffectGainCrystal, Color: game.ColorRed})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	p = mustPlayer(t, out.State)
	if p.Crystals.Red != game.MaxCrystals || !reflect.DeepEqual(p.ManaTokens, []game.Color{game.ColorRed}) {
		t.Fatalf("player = %+v", p)
	}
}

func TestResourceBonusIsConsumed(t *testing.T) {
	cat := baseContent(t)
	ambush, _ := cat.Card("ambush")
	s := inCombat(testState(), game.CombatAttack, "enemy-1")
	out, err := Resolve(testEnv(t), s, ambush.Basic)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(out.State.Modifiers) != 1 {
		t.Fatalf("modifiers = %+v", out.State.Modifiers)
	}
	attack := game.Effect{Kind: game.EffectGainAttack, Amount: 2, AttackKind: game.AttackMelee}
	out, err = Resolve(testEnv(t), out.State, attack)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustPlayer(t, out.State).Pools.Melee.Physical; got != 3 {
		t.Fatalf("melee = %d, want 3", got)
	}
	if out.State.Modifiers != nil {
		t.Fatal("bonus must be consumed")
	}
	out, err = Resolve(testEnv(t), out.State, attack)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustPlayer(t, out.State).Pools.Melee.Physical; got != 5 {
		t.Fatalf("melee = %d, want 5", got)
	}
}

func TestReputationClamps(t *testing.T) {
	s := testState()
	p := mustPlayer(t, s)
	p.Reputation = MinReputation
	s = s.WithPlayer(p)
	out, err := Resolve(testEnv(t), s, game.Effect{Kind: game.EffectChangeReputation, Amount: -1})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustPlayer(t, out.State).Reputation; got != MinReputation || len(out.Events) != 0 {
		t.Fatalf("reputation = %d events=%d", got, len(out.Events))
	}
}

func TestGainFameLevelsUp(t *testing.T) {
	s := testState()
	s.AdvancedDeck = []string{"mountain_lore", "ambush"}
	out, err := GainFame(baseContent(t), s, "p1", 8)
	if err != nil {
		t.Fatalf("GainFame: %v", err)
	}
	p := mustPlayer(t, out.State)
	if p.Level != 3 || p.Fame != 8 {
		t.Fatalf("level/fame = %d/%d, want 3/8", p.Level, p.Fame)
	}
	if !reflect.DeepEqual(p.Skills, []string{"dark_paths"}) {
		t.Fatalf("skills = %v", p.Skills)
	}
	if p.Armor != 3 || p.CommandTokens != 1 {
		t.Fatalf("armor/tokens = %d/%d", p.Armor, p.CommandTokens)
	}
	if !reflect.DeepEqual(p.Discard, []string{"mountain_lore"}) || !out.Revealed {
		t.Fatalf("discard = %v revealed=%v", p.Discard, out.Revealed)
	}
	if !reflect.DeepEqual(out.State.AdvancedDeck, []string{"ambush"}) {
		t.Fatalf("advanced deck = %v", out.State.AdvancedDeck)
	}
}

func TestApplyModifierTargetsSoleEnemy(t *testing.T) {
	cat := baseContent(t)
	stare, _ := cat.Card("chilling_stare")
	s := inCombat(testState(), game.CombatBlock, "enemy-7")
	out, err := Resolve(testEnv(t), s, stare.Powered)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(out.State.Modifiers) != 1 || out.State.Modifiers[0].Scope.EnemyInstanceID != "enemy-7" {
		t.Fatalf("modifiers = %+v", out.State.Modifiers)
	}
}

func TestDetectionMirrorsStructure(t *testing.T) {
	cat := baseContent(t)
	tests := []struct {
		card string
		want Capability
		not  Capability
	}{
		{"rage", CapAttack | CapBlock, CapMove},
		{"mountain_lore", CapMove | CapModifier, CapAttack},
		{"chilling_stare", CapModifier | CapTargetsEnemy, CapBlock},
		{"swiftness", CapMove | CapRanged, CapSiege},
		{"crystallize", CapMana, CapDraw},
		{"tranquility", CapHealing | CapDraw, CapAttack},
	}
	for _, tc := range tests {
		card, ok := cat.Card(tc.card)
		if !ok {
			t.Fatalf("missing card %s", tc.card)
		}
		caps := Capabilities(card.Basic) | Capabilities(card.Powered)
		if !caps.Has(tc.want) {
			t.Fatalf("%s caps = %b, want %b", tc.card, caps, tc.want)
		}
		if caps.Any(tc.not) {
			t.Fatalf("%s caps = %b, must not include %b", tc.card, caps, tc.not)
		}
	}
	if Detect(game.Effect{Kind: "unknown"}, CapMove) {
		t.Fatal("unknown kinds detect nothing")
	}
}

func TestResolveRejectsUnknownKind(t *testing.T) {
	if _, err := Resolve(testEnv(t), testState(), game.Effect{Kind: "teleport"}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}
