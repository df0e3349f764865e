/*
 * Copyright 2026 The Lers Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package codegen

// cPrelude is the fixed runtime head of every generated scanner: I/O
// handles, the input buffer, yytext and yyleng.
const cPrelude = `#include <stdio.h>
#include <stdlib.h>

typedef unsigned long IdxType;

#define YYTEXT_MAXLEN 1024

FILE *yyin;
FILE *yyout;

char *g_buffer;
char *g_buffer_ptr;
IdxType g_buflen;

char yytext[YYTEXT_MAXLEN];
IdxType yyleng;

/* read the whole of yyin into g_buffer and reset the cursor */
void yy_read_buffer(void) {
  IdxType cap = 4096;
  g_buffer = (char *)malloc(cap + 1);
  if (!g_buffer) {
    perror("Failed to allocate buffer");
    g_buflen = 0;
    g_buffer_ptr = g_buffer;
    return;
  }
  g_buflen = 0;
  for (;;) {
    IdxType n = fread(g_buffer + g_buflen, 1, cap - g_buflen, yyin);
    g_buflen += n;
    if (g_buflen < cap)
      break;
    cap *= 2;
    char *grown = (char *)realloc(g_buffer, cap + 1);
    if (!grown) {
      perror("Failed to grow buffer");
      break;
    }
    g_buffer = grown;
  }
  g_buffer[g_buflen] = '\0';
  g_buffer_ptr = g_buffer;
}
`

// cRegexRuntime is the regex engine inlined into every generated scanner:
// pattern lexer, recursive descent parser, Thompson NFA construction with
// multi-pattern union, and the on-line longest-match simulation.
const cRegexRuntime = `/*
 * Embedded regex engine
 */

#include <stddef.h>

#define MAX 999
#define bool char
#define true 1
#define false 0

typedef unsigned short State;

typedef struct States {
  State states[MAX];
  size_t len;
} States;

/* create an empty container of states */
States *new_states() {
  States *s = (States *)malloc(sizeof(States));
  s->len = 0;
  return s;
}

/* push a state into the container */
void push_state(States *s, State state) {
  s->states[s->len] = state;
  ++(s->len);
}

/* if the states is empty */
bool states_is_empty(States *s) { return s->len == 0; }

/* if the container has the state */
bool have_state(States *s, State state) {
  for (size_t i = 0; i < s->len; ++i)
    if (s->states[i] == state)
      return true;
  return false;
}

/*
 * Lexer
 */

typedef enum TokenType {
  LPAREN,
  RPAREN,
  LBRACKET,
  RBRACKET,
  CARET,
  DASH,
  DOT,
  PLUS,
  ASTERISK,
  BAR,
  BACK_SLASH,
  LITERAL,
  END
} TokenType;

typedef struct Token {
  TokenType type;
  char value;
} Token;

Token *new_token(TokenType type, char value) {
  Token *token = (Token *)malloc(sizeof(Token));
  token->type = type;
  token->value = value;
  return token;
}

typedef struct Lexer {
  char *pattern;
  char *current_char;
  Token *current_token;
} Lexer;

Lexer *new_lexer(char *pattern) {
  Lexer *lexer = (Lexer *)malloc(sizeof(Lexer));
  lexer->pattern = pattern;
  lexer->current_char = lexer->pattern;
  lexer->current_token = NULL;
  return lexer;
}

Token *get_next_token(Lexer *lexer) {
  if (lexer->current_token != NULL)
    free(lexer->current_token);

  char current_char = *lexer->current_char;
  switch (current_char) {
  case '\0':
    lexer->current_token = new_token(END, '\0');
    break;
  case '(':
    lexer->current_token = new_token(LPAREN, current_char);
    break;
  case ')':
    lexer->current_token = new_token(RPAREN, current_char);
    break;
  case '[':
    lexer->current_token = new_token(LBRACKET, current_char);
    break;
  case ']':
    lexer->current_token = new_token(RBRACKET, current_char);
    break;
  case '^':
    lexer->current_token = new_token(CARET, current_char);
    break;
  case '-':
    lexer->current_token = new_token(DASH, current_char);
    break;
  case '.':
    lexer->current_token = new_token(DOT, current_char);
    break;
  case '+':
    lexer->current_token = new_token(PLUS, current_char);
    break;
  case '*':
    lexer->current_token = new_token(ASTERISK, current_char);
    break;
  case '|':
    lexer->current_token = new_token(BAR, current_char);
    break;
  case '\\':
    lexer->current_token = new_token(BACK_SLASH, current_char);
    break;
  default:
    lexer->current_token = new_token(LITERAL, current_char);
    break;
  }
  if (current_char != '\0')
    ++(lexer->current_char);

  return lexer->current_token;
}

/*
 * Parser
 */

typedef enum AstType {
  LiteralNode,
  SetNode,
  AndNode,
  OrNode,
  RepeatNode,
  GroupNode,
} AstType;

typedef struct AstLiteral {
  char value;
} AstLiteral;

typedef struct Ast Ast;

typedef struct AstSet {
  char chars[256];
  size_t len;
  char negated;
} AstSet;

typedef struct AstAnd {
  Ast *r1;
  Ast *r2;
} AstAnd;

typedef struct AstOr {
  Ast *r1;
  Ast *r2;
} AstOr;

typedef struct AstRepeat {
  Ast *r;
} AstRepeat;

typedef struct AstGroup {
  Ast *r;
} AstGroup;

typedef union AstData {
  AstLiteral literal;
  AstSet set;
  AstAnd and;
  AstOr or;
  AstRepeat repeat;
  AstGroup group;
} AstData;

struct Ast {
  AstType type;
  AstData *data;
};

static Ast *new_ast(AstType type) {
  Ast *node = (Ast *)malloc(sizeof(Ast));
  node->type = type;
  node->data = (AstData *)malloc(sizeof(AstData));
  return node;
}

static Ast *new_ast_literal(char value) {
  Ast *node = new_ast(LiteralNode);
  node->data->literal.value = value;
  return node;
}

static Ast *new_ast_set(char negated) {
  Ast *node = new_ast(SetNode);
  node->data->set.len = 0;
  node->data->set.negated = negated;
  return node;
}

static void set_add(AstSet *set, char value) {
  for (size_t i = 0; i < set->len; ++i)
    if (set->chars[i] == value)
      return;
  set->chars[set->len] = value;
  ++(set->len);
}

static Ast *new_ast_and(Ast *r1, Ast *r2) {
  Ast *node = new_ast(AndNode);
  node->data->and.r1 = r1;
  node->data->and.r2 = r2;
  return node;
}

static Ast *new_ast_or(Ast *r1, Ast *r2) {
  Ast *node = new_ast(OrNode);
  node->data->or.r1 = r1;
  node->data->or.r2 = r2;
  return node;
}

static Ast *new_ast_repeat(Ast *r) {
  Ast *node = new_ast(RepeatNode);
  node->data->repeat.r = r;
  return node;
}

static Ast *new_ast_group(Ast *r) {
  Ast *node = new_ast(GroupNode);
  node->data->group.r = r;
  return node;
}

/* deep copy, used to desugar X+ into X followed by X* */
static Ast *ast_clone(Ast *node) {
  switch (node->type) {
  case LiteralNode:
    return new_ast_literal(node->data->literal.value);
  case SetNode: {
    Ast *copy = new_ast_set(node->data->set.negated);
    for (size_t i = 0; i < node->data->set.len; ++i)
      set_add(&copy->data->set, node->data->set.chars[i]);
    return copy;
  }
  case AndNode:
    return new_ast_and(ast_clone(node->data->and.r1), ast_clone(node->data->and.r2));
  case OrNode:
    return new_ast_or(ast_clone(node->data->or.r1), ast_clone(node->data->or.r2));
  case RepeatNode:
    return new_ast_repeat(ast_clone(node->data->repeat.r));
  case GroupNode:
    return new_ast_group(ast_clone(node->data->group.r));
  }
  return NULL;
}

void free_ast(Ast *node) {
  if (node == NULL)
    return;
  switch (node->type) {
  case LiteralNode:
  case SetNode:
    break;
  case AndNode:
    free_ast(node->data->and.r1);
    free_ast(node->data->and.r2);
    break;
  case OrNode:
    free_ast(node->data->or.r1);
    free_ast(node->data->or.r2);
    break;
  case RepeatNode:
    free_ast(node->data->repeat.r);
    break;
  case GroupNode:
    free_ast(node->data->group.r);
    break;
  }
  free(node->data);
  free(node);
}

typedef struct Parser {
  Lexer *lexer;
  Token *current_token;
} Parser;

Parser *new_parser(Lexer *lexer) {
  Parser *parser = (Parser *)malloc(sizeof(Parser));
  parser->lexer = lexer;
  parser->current_token = get_next_token(lexer);
  return parser;
}

static void eat(Parser *parser, TokenType type) {
  if (parser->current_token->type == type) {
    parser->current_token = get_next_token(parser->lexer);
  } else {
    fprintf(stderr, "Wrong Token Type! Expect %d, found %d.\n", type,
            parser->current_token->type);
    exit(1);
  }
}

static char unescape_char(char c) {
  switch (c) {
  case 'a':
    return 0x07;
  case 'n':
    return 0x0A;
  case 'r':
    return 0x0D;
  case 't':
    return 0x09;
  }
  return c;
}

static bool starts_base(TokenType type) {
  return type == LITERAL || type == CARET || type == BACK_SLASH ||
         type == DOT || type == LBRACKET || type == LPAREN;
}

/* Forward declarations */
static Ast *parse_expr(Parser *parser);
static Ast *parse_term(Parser *parser);
static Ast *parse_factor(Parser *parser);
static Ast *parse_base(Parser *parser);
static Ast *parse_class(Parser *parser);

/*
 * expr := term ('|' term)*
 */
static Ast *parse_expr(Parser *parser) {
  Ast *node = parse_term(parser);
  while (parser->current_token->type == BAR) {
    eat(parser, BAR);
    Ast *right = parse_term(parser);
    node = new_ast_or(node, right);
  }
  return node;
}

/*
 * term := factor factor*
 */
static Ast *parse_term(Parser *parser) {
  Ast *node = parse_factor(parser);
  while (starts_base(parser->current_token->type)) {
    Ast *right = parse_factor(parser);
    node = new_ast_and(node, right);
  }
  return node;
}

/*
 * factor := base ('*' | '+')?
 */
static Ast *parse_factor(Parser *parser) {
  Ast *node = parse_base(parser);
  if (parser->current_token->type == ASTERISK) {
    eat(parser, ASTERISK);
    node = new_ast_repeat(node);
  } else if (parser->current_token->type == PLUS) {
    eat(parser, PLUS);
    node = new_ast_and(ast_clone(node), new_ast_repeat(node));
  }
  return node;
}

/*
 * base := LITERAL | '^' | '\' anyByte | '.' | '[' range ']' | '(' expr ')'
 */
static Ast *parse_base(Parser *parser) {
  switch (parser->current_token->type) {
  case LITERAL: {
    char value = parser->current_token->value;
    eat(parser, LITERAL);
    return new_ast_literal(value);
  }
  case CARET:
    /* outside a class, '^' is an ordinary byte */
    eat(parser, CARET);
    return new_ast_literal('^');
  case BACK_SLASH: {
    eat(parser, BACK_SLASH);
    if (parser->current_token->type == END) {
      fprintf(stderr, "trailing backslash in pattern\n");
      exit(1);
    }
    char value = unescape_char(parser->current_token->value);
    parser->current_token = get_next_token(parser->lexer);
    return new_ast_literal(value);
  }
  case DOT: {
    /* '.' is any byte except newline */
    eat(parser, DOT);
    Ast *node = new_ast_set(true);
    set_add(&node->data->set, '\n');
    return node;
  }
  case LBRACKET:
    return parse_class(parser);
  case LPAREN: {
    eat(parser, LPAREN);
    Ast *node = parse_expr(parser);
    eat(parser, RPAREN);
    return new_ast_group(node);
  }
  default:
    fprintf(stderr, "unexpected token: %d\n", parser->current_token->type);
    exit(1);
  }
}

/*
 * range := '^'? atom*
 * atom  := '\' anyByte | LITERAL ( '-' LITERAL )?
 */
static Ast *parse_class(Parser *parser) {
  eat(parser, LBRACKET);
  char negated = false;
  if (parser->current_token->type == CARET) {
    eat(parser, CARET);
    negated = true;
  }
  Ast *node = new_ast_set(negated);
  for (;;) {
    switch (parser->current_token->type) {
    case RBRACKET:
      eat(parser, RBRACKET);
      return node;
    case END:
      fprintf(stderr, "unmatched bracket in pattern\n");
      exit(1);
    case BACK_SLASH: {
      eat(parser, BACK_SLASH);
      if (parser->current_token->type == END) {
        fprintf(stderr, "trailing backslash in pattern\n");
        exit(1);
      }
      set_add(&node->data->set, unescape_char(parser->current_token->value));
      parser->current_token = get_next_token(parser->lexer);
      break;
    }
    default: {
      /* inside a class, other metacharacters are ordinary bytes */
      char lo = parser->current_token->value;
      parser->current_token = get_next_token(parser->lexer);
      if (parser->current_token->type != DASH) {
        set_add(&node->data->set, lo);
        break;
      }
      eat(parser, DASH);
      if (parser->current_token->type == END) {
        fprintf(stderr, "unmatched bracket in pattern\n");
        exit(1);
      }
      if (parser->current_token->type == RBRACKET) {
        fprintf(stderr, "incomplete range in pattern\n");
        exit(1);
      }
      char hi = parser->current_token->value;
      if (parser->current_token->type == BACK_SLASH) {
        eat(parser, BACK_SLASH);
        if (parser->current_token->type == END) {
          fprintf(stderr, "trailing backslash in pattern\n");
          exit(1);
        }
        hi = unescape_char(parser->current_token->value);
      }
      parser->current_token = get_next_token(parser->lexer);
      if ((unsigned char)hi < (unsigned char)lo) {
        fprintf(stderr, "invalid range in pattern\n");
        exit(1);
      }
      for (unsigned char c = (unsigned char)lo;; ++c) {
        set_add(&node->data->set, (char)c);
        if (c == (unsigned char)hi)
          break;
      }
      break;
    }
    }
  }
}

/* Entry point for parsing */
Ast *parse(Parser *parser) {
  Ast *node = parse_expr(parser);
  if (parser->current_token->type != END) {
    fprintf(stderr, "unexpected trailing token: %d\n",
            parser->current_token->type);
    exit(1);
  }
  return node;
}

/*
 * NFA
 */

char EPSILON = -1;

typedef enum EdgeKind { EDGE_EPSILON, EDGE_CHAR, EDGE_SET } EdgeKind;

typedef struct Edge {
  EdgeKind kind;
  char symbol;
  char set[256];
  size_t set_len;
  char negated;
  State from;
  State to;
} Edge;

typedef struct NFA {
  State states_count;
  States *target_states;
  Edge *edges[MAX];
  unsigned int edges_count;
} NFA;

NFA *new_nfa() {
  NFA *nfa = (NFA *)malloc(sizeof(NFA));
  nfa->states_count = 0;
  nfa->target_states = NULL;
  nfa->edges_count = 0;
  return nfa;
}

Edge *new_edge(EdgeKind kind, char symbol, State from, State to) {
  Edge *e = (Edge *)malloc(sizeof(Edge));
  e->kind = kind;
  e->symbol = symbol;
  e->set_len = 0;
  e->negated = false;
  e->from = from;
  e->to = to;
  return e;
}

/* whether a consuming edge accepts the byte */
bool edge_accepts(Edge *e, char c) {
  switch (e->kind) {
  case EDGE_CHAR:
    return e->symbol == c;
  case EDGE_SET: {
    bool in = false;
    for (size_t i = 0; i < e->set_len; ++i) {
      if (e->set[i] == c) {
        in = true;
        break;
      }
    }
    return e->negated ? !in : in;
  }
  default:
    return false;
  }
}

void push_edge(NFA *nfa, Edge *e) {
  if (nfa->edges_count >= MAX) {
    fprintf(stderr, "regex overflow: more than %d NFA edges\n", MAX);
    exit(1);
  }
  nfa->edges[nfa->edges_count] = e;
  ++(nfa->edges_count);
}

void free_nfa(NFA *nfa) {
  for (size_t i = 0; i < nfa->edges_count; ++i) {
    free(nfa->edges[i]);
  }
  if (nfa->target_states != NULL) {
    free(nfa->target_states);
  }
  free(nfa);
}

/* return all states reachable with epsilon labels from the given states */
States *epsilon_closure(NFA *nfa, States *s) {
  States *new_s = new_states();

  for (size_t i = 0; i < s->len; ++i) {
    push_state(new_s, s->states[i]);
  }

  /* reuse the original container as the work stack */
  while (s->len > 0) {
    --(s->len);
    State state = s->states[s->len];
    for (size_t i = 0; i < nfa->edges_count; ++i) {
      Edge *e = nfa->edges[i];
      if (e->kind == EDGE_EPSILON && e->from == state) {
        State next_state = e->to;
        if (!have_state(new_s, next_state)) {
          push_state(new_s, next_state);
          s->states[s->len] = next_state;
          ++(s->len);
        }
      }
    }
  }

  free(s);
  return new_s;
}

/* return all states reachable with the given byte from the given states */
States *move(NFA *nfa, States *s, char symbol) {
  States *new_s = new_states();
  for (size_t i = 0; i < s->len; ++i) {
    for (size_t j = 0; j < nfa->edges_count; ++j) {
      Edge *e = nfa->edges[j];
      if (e->kind != EDGE_EPSILON && e->from == s->states[i] &&
          edge_accepts(e, symbol)) {
        State next_state = e->to;
        if (!have_state(new_s, next_state)) {
          push_state(new_s, next_state);
        }
      }
    }
  }
  free(s);
  return new_s;
}

/*
 * Builder
 */

static State g_state_counts = 0;

typedef struct {
  NFA *nfa;
  State start;
  State accept;
} NFAFragment;

static NFAFragment *new_nfa_fragment(NFA *nfa, State start, State accept) {
  NFAFragment *fragment = (NFAFragment *)malloc(sizeof(NFAFragment));
  fragment->nfa = nfa;
  fragment->start = start;
  fragment->accept = accept;
  return fragment;
}

static State get_state_counts() { return g_state_counts; }

static State increase_state_counts() {
  if (g_state_counts >= MAX) {
    fprintf(stderr, "regex overflow: more than %d NFA states\n", MAX);
    exit(1);
  }
  return g_state_counts++;
}

/* used to concatenate two fragments */
static void decrease_state_counts() { --g_state_counts; }

static void add_epsilon(NFA *nfa, State from, State to) {
  push_edge(nfa, new_edge(EDGE_EPSILON, EPSILON, from, to));
}

static void add_symbol(NFA *nfa, State from, State to, char symbol) {
  push_edge(nfa, new_edge(EDGE_CHAR, symbol, from, to));
}

static void add_set(NFA *nfa, State from, State to, AstSet *set) {
  Edge *e = new_edge(EDGE_SET, EPSILON, from, to);
  for (size_t i = 0; i < set->len; ++i) {
    e->set[i] = set->chars[i];
  }
  e->set_len = set->len;
  e->negated = set->negated;
  push_edge(nfa, e);
}

/* move all edges from source NFA to destination NFA */
static void move_edges(NFA *dst, NFA *src) {
  for (size_t i = 0; i < src->edges_count; ++i) {
    push_edge(dst, src->edges[i]);
  }
  src->edges_count = 0;
}

static NFAFragment *ast2nfa_fragment(Ast *ast) {
  if (ast == NULL)
    return NULL;

  switch (ast->type) {
  case LiteralNode: {
    /* START --literal--> END */
    NFA *nfa = new_nfa();
    State start = increase_state_counts();
    State accept = increase_state_counts();
    add_symbol(nfa, start, accept, ast->data->literal.value);
    return new_nfa_fragment(nfa, start, accept);
  }

  case SetNode: {
    /* START --set--> END */
    NFA *nfa = new_nfa();
    State start = increase_state_counts();
    State accept = increase_state_counts();
    add_set(nfa, start, accept, &ast->data->set);
    return new_nfa_fragment(nfa, start, accept);
  }

  case AndNode: {
    /* START --left--> (left end & right start) --right--> END */
    NFAFragment *left = ast2nfa_fragment(ast->data->and.r1);
    decrease_state_counts(); /* concatenate left end and right start */
    NFAFragment *right = ast2nfa_fragment(ast->data->and.r2);
    move_edges(left->nfa, right->nfa);
    free(right->nfa);
    NFAFragment *result =
        new_nfa_fragment(left->nfa, left->start, right->accept);
    free(left);
    free(right);
    return result;
  }

  case OrNode: {
    /*
     *          /-e--> S0 --left---> S1 -e-\
     * START --<                            >--> END
     *          \-e--> S2 --right--> S3 -e-/
     */
    NFA *nfa = new_nfa();
    State start = increase_state_counts();
    NFAFragment *left = ast2nfa_fragment(ast->data->or.r1);
    NFAFragment *right = ast2nfa_fragment(ast->data->or.r2);
    State accept = increase_state_counts();
    add_epsilon(nfa, start, left->start);
    add_epsilon(nfa, start, right->start);
    add_epsilon(nfa, left->accept, accept);
    add_epsilon(nfa, right->accept, accept);
    move_edges(nfa, left->nfa);
    move_edges(nfa, right->nfa);
    free(left->nfa);
    free(right->nfa);
    NFAFragment *result = new_nfa_fragment(nfa, start, accept);
    free(left);
    free(right);
    return result;
  }

  case RepeatNode: {
    /*
     *               .-<-e-<-.
     *              /         \
     * START --e--> S0 --r--> S1 --e--> END
     *     \                            /
     *      .---------->-e->-----------.
     */
    NFA *nfa = new_nfa();
    State start = increase_state_counts();
    NFAFragment *body = ast2nfa_fragment(ast->data->repeat.r);
    State accept = increase_state_counts();
    move_edges(nfa, body->nfa);
    add_epsilon(nfa, start, body->start);
    add_epsilon(nfa, start, accept);
    add_epsilon(nfa, body->accept, body->start);
    add_epsilon(nfa, body->accept, accept);
    free(body->nfa);
    NFAFragment *result = new_nfa_fragment(nfa, start, accept);
    free(body);
    return result;
  }

  case GroupNode:
    /* parentheses are transparent */
    return ast2nfa_fragment(ast->data->group.r);

  default:
    exit(1);
  }
}

NFA *ast2nfa(Ast *ast) {
  NFAFragment *fragment = ast2nfa_fragment(ast);
  NFA *nfa = fragment->nfa;
  State accept = fragment->accept;
  free(fragment);
  free_ast(ast);

  nfa->states_count = g_state_counts;

  States *target_states = new_states();
  push_state(target_states, accept);
  nfa->target_states = target_states;
  return nfa;
}

NFA *build(char *pattern) {
  Lexer *lexer = new_lexer(pattern);
  Parser *parser = new_parser(lexer);
  Ast *ast = parse(parser);
  NFA *nfa = ast2nfa(ast);
  if (lexer->current_token != NULL) {
    free(lexer->current_token);
  }
  free(lexer);
  free(parser);
  return nfa;
}

NFA *build_many(char **patterns, size_t len) {
  g_state_counts = 0;
  NFA *nfa = new_nfa();
  nfa->target_states = new_states();
  State start = increase_state_counts();

  for (size_t i = 0; i < len; ++i) {
    State sub_start = get_state_counts();
    NFA *sub_nfa = build(patterns[i]);
    move_edges(nfa, sub_nfa);
    add_epsilon(nfa, start, sub_start);
    push_state(nfa->target_states, sub_nfa->target_states->states[0]);
    free(sub_nfa->target_states);
    free(sub_nfa);
  }

  nfa->states_count = g_state_counts;
  return nfa;
}

/*
 * Matching
 */

/* index in the target list of the first target state present in s, or -1.
 * The list is scanned in rule order so the earliest rule wins a tie. */
int accept_index(NFA *nfa, States *s) {
  for (size_t i = 0; i < nfa->target_states->len; ++i) {
    if (have_state(s, nfa->target_states->states[i]))
      return (int)i;
  }
  return -1;
}

/* if the input string fully matches the pattern */
bool match_full(NFA *nfa, char *input) {
  States *s = new_states();
  push_state(s, 0);
  s = epsilon_closure(nfa, s);

  char *next_char = input;
  while (*next_char != '\0') {
    s = epsilon_closure(nfa, move(nfa, s, *next_char));
    ++next_char;
  }
  bool result = accept_index(nfa, s) >= 0;
  free(s);
  return result;
}

/*
 * advance the buffer cursor by one token: copy the longest match to yytext,
 * assign its length to yyleng, and return the index of the winning pattern,
 * or -1 when the remaining input matches nothing
 */
int yy_match(NFA *nfa) {
  States *s = new_states();
  push_state(s, 0);
  s = epsilon_closure(nfa, s);

  yyleng = 0;
  IdxType last_match = 0;
  int last_rule = -1;
  while (g_buffer_ptr < g_buffer + g_buflen) {
    s = epsilon_closure(nfa, move(nfa, s, *g_buffer_ptr));

    if (states_is_empty(s)) {
      if (last_match > 0)
        break;
      /* nothing can start here: discard the byte and restart */
      push_state(s, 0);
      s = epsilon_closure(nfa, s);
      yyleng = 0;
      ++g_buffer_ptr;
      continue;
    }

    if (yyleng + 1 >= YYTEXT_MAXLEN) {
      fprintf(stderr, "yytext overflow: token longer than %d bytes\n",
              YYTEXT_MAXLEN - 1);
      exit(1);
    }
    yytext[(yyleng)++] = *g_buffer_ptr;

    int rule = accept_index(nfa, s);
    if (rule >= 0) {
      last_match = yyleng;
      last_rule = rule;
    }

    ++g_buffer_ptr;
  }
  yyleng = last_match;
  yytext[yyleng] = '\0';
  free(s);
  return last_rule;
}
`

// cYylex is the generated scanner's driver loop.
const cYylex = `int yylex() {
  if (yyin == NULL)
    yyin = stdin;
  if (yyout == NULL)
    yyout = stdout;
  yy_read_buffer();
  NFA *nfa = build_many(g_patterns, g_pattern_count);
  while (g_buffer_ptr < g_buffer + g_buflen) {
    int pattern_idx = yy_match(nfa);
    if (pattern_idx >= 0)
      action(pattern_idx);
  }
  free_nfa(nfa);
  free(g_buffer);
  g_buffer = NULL;
  return 0;
}`
