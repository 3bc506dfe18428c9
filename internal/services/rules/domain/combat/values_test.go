package combat

import (
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func enemyDef(t *testing.T, cat *content.Static, id string) content.EnemyDef {
	t.Helper()
	def, ok := cat.Enemy(id)
	if !ok {
		t.Fatalf("enemy %s missing from base content", id)
	}
	return def
}

func allEnemies(id string, kind game.ModifierKind, amount int) game.ActiveModifier {
	return game.ActiveModifier{
		ID:       id,
		Source:   game.Source{Kind: game.SourceCard, ID: "test", PlayerID: "p1"},
		Duration: game.DurationCombat,
		Scope:    game.Scope{Kind: game.ScopeAllEnemies},
		Effect:   game.ModifierEffect{Kind: kind, Amount: amount},
	}
}

func TestEffectiveDamageHalvesResistedElements(t *testing.T) {
	cat := baseContent(t)
	mages := enemyDef(t, cat, "fire_mages")
	golems := enemyDef(t, cat, "ice_golems")
	e := game.CombatEnemy{InstanceID: "enemy-1"}

	tests := []struct {
		name string
		def  content.EnemyDef
		pool game.ElementalPool
		want int
	}{
		{name: "fire into fire resistance", def: mages, pool: game.ElementalPool{Fire: 7}, want: 3},
		{name: "mixed pool", def: mages, pool: game.ElementalPool{Physical: 2, Fire: 7}, want: 5},
		{name: "resisted elements summed before halving", def: golems, pool: game.ElementalPool{Physical: 3, Ice: 4}, want: 3},
		{name: "cold fire needs both resistances", def: golems, pool: game.ElementalPool{ColdFire: 5}, want: 5},
		{
			name: "cold fire resisted by fire and ice",
			def:  content.EnemyDef{ID: "warden", Armor: 5, Resistances: []game.Element{game.ElementFire, game.ElementIce}},
			pool: game.ElementalPool{ColdFire: 5},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveDamage(tt.def, nil, "p1", e, tt.pool); got != tt.want {
				t.Fatalf("EffectiveDamage = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEffectiveDamageWithResistancesRemoved(t *testing.T) {
	cat := baseContent(t)
	mods := []game.ActiveModifier{allEnemies("mod-1", game.ModifierEnemyRemoveResistances, 0)}
	got := EffectiveDamage(enemyDef(t, cat, "fire_mages"), mods, "p1", game.CombatEnemy{InstanceID: "enemy-1"}, game.ElementalPool{Fire: 7})
	if got != 7 {
		t.Fatalf("EffectiveDamage = %d, want 7", got)
	}
}

func TestBrutalAndSwift(t *testing.T) {
	cat := baseContent(t)
	minotaur := enemyDef(t, cat, "minotaur")
	wolves := enemyDef(t, cat, "wolf_riders")

	if got := DamageDealt(minotaur, 5); got != 10 {
		t.Fatalf("brutal DamageDealt = %d, want 10", got)
	}
	if got := BlockRequired(minotaur, 5); got != 5 {
		t.Fatalf("brutal BlockRequired = %d, want 5", got)
	}
	if got := BlockRequired(wolves, 3); got != 6 {
		t.Fatalf("swift BlockRequired = %d, want 6", got)
	}
	if got := DamageDealt(wolves, 3); got != 3 {
		t.Fatalf("swift DamageDealt = %d, want 3", got)
	}
}

func TestEffectiveAttack(t *testing.T) {
	cat := baseContent(t)
	prowlers := enemyDef(t, cat, "prowlers")
	shadow := enemyDef(t, cat, "shadow")
	e := game.CombatEnemy{InstanceID: "enemy-1"}

	reduce := []game.ActiveModifier{
		allEnemies("mod-1", game.ModifierEnemyAttackReduce, 2),
		allEnemies("mod-2", game.ModifierEnemyAttackReduce, 3),
	}
	if got := EffectiveAttack(prowlers, reduce, "p1", e); got != 1 {
		t.Fatalf("reduced attack = %d, want 1", got)
	}
	if got := EffectiveAttack(prowlers, []game.ActiveModifier{allEnemies("mod-1", game.ModifierEnemyAttackReduce, 9)}, "p1", e); got != 0 {
		t.Fatalf("over-reduced attack = %d, want 0", got)
	}
	cancel := []game.ActiveModifier{allEnemies("mod-1", game.ModifierEnemyAttackCancel, 0)}
	if got := EffectiveAttack(prowlers, cancel, "p1", e); got != 0 {
		t.Fatalf("cancelled attack = %d, want 0", got)
	}
	if got := EffectiveAttack(shadow, cancel, "p1", e); got != 4 {
		t.Fatalf("arcane immune attack = %d, want 4", got)
	}
	if got := EffectiveAttack(prowlers, cancel, "p2", e); got != 4 {
		t.Fatalf("other player's fight attack = %d, want 4", got)
	}
}

func TestEffectiveArmor(t *testing.T) {
	cat := baseContent(t)
	prowlers := enemyDef(t, cat, "prowlers")
	shadow := enemyDef(t, cat, "shadow")

	tests := []struct {
		name string
		def  content.EnemyDef
		e    game.CombatEnemy
		mods []game.ActiveModifier
		want int
	}{
		{name: "base", def: prowlers, e: game.CombatEnemy{InstanceID: "enemy-1"}, want: 3},
		{name: "reduced", def: prowlers, e: game.CombatEnemy{InstanceID: "enemy-1"}, mods: []game.ActiveModifier{allEnemies("mod-1", game.ModifierEnemyArmorReduce, 1)}, want: 2},
		{name: "floor at one", def: prowlers, e: game.CombatEnemy{InstanceID: "enemy-1"}, mods: []game.ActiveModifier{allEnemies("mod-1", game.ModifierEnemyArmorReduce, 10)}, want: 1},
		{name: "elusive unblocked", def: shadow, e: game.CombatEnemy{InstanceID: "enemy-1"}, want: 8},
		{name: "elusive blocked", def: shadow, e: game.CombatEnemy{InstanceID: "enemy-1", IsBlocked: true}, want: 4},
		{name: "arcane immunity ignores reduction", def: shadow, e: game.CombatEnemy{InstanceID: "enemy-1", IsBlocked: true}, mods: []game.ActiveModifier{allEnemies("mod-1", game.ModifierEnemyArmorReduce, 2)}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveArmor(tt.def, tt.mods, "p1", tt.e); got != tt.want {
				t.Fatalf("EffectiveArmor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEffectiveBlock(t *testing.T) {
	tests := []struct {
		name   string
		block  game.ElementalPool
		attack game.Element
		want   int
	}{
		{name: "physical attack takes any block", block: game.ElementalPool{Physical: 2, Fire: 3}, attack: game.ElementPhysical, want: 5},
		{name: "ice blocks fire", block: game.ElementalPool{Ice: 3, Physical: 3}, attack: game.ElementFire, want: 4},
		{name: "fire blocks ice", block: game.ElementalPool{Fire: 3, Ice: 3}, attack: game.ElementIce, want: 4},
		{name: "cold fire only by cold fire", block: game.ElementalPool{Fire: 4, Ice: 3, ColdFire: 1}, attack: game.ElementColdFire, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveBlock(tt.block, tt.attack); got != tt.want {
				t.Fatalf("EffectiveBlock = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFortified(t *testing.T) {
	cat := baseContent(t)
	diggers := enemyDef(t, cat, "diggers")
	prowlers := enemyDef(t, cat, "prowlers")
	site := game.CombatEnemy{InstanceID: "enemy-1", Origin: game.OriginSite}
	roaming := game.CombatEnemy{InstanceID: "enemy-2", Origin: game.OriginRampaging}

	if !Fortified(diggers, nil, "p1", roaming, false) {
		t.Fatal("fortified ability not detected")
	}
	if !Fortified(prowlers, nil, "p1", site, true) {
		t.Fatal("site defender not fortified")
	}
	if Fortified(prowlers, nil, "p1", roaming, true) {
		t.Fatal("rampaging enemy fortified by site")
	}
	ignore := []game.ActiveModifier{allEnemies("mod-1", game.ModifierIgnoreFortification, 0)}
	if Fortified(diggers, ignore, "p1", roaming, false) {
		t.Fatal("fortification not ignored")
	}
}
